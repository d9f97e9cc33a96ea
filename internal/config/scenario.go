package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/kwsp/internal/model"
)

// Scenario is one set of calculation inputs as written in a scenario file.
// Rates are percentages.
type Scenario struct {
	Name                 string  `yaml:"name,omitempty" json:"name,omitempty"`
	InitialBalance       float64 `yaml:"initial_balance" json:"initial_balance"`
	DividendRatePercent  float64 `yaml:"dividend_rate_percent" json:"dividend_rate_percent"`
	InflationRatePercent float64 `yaml:"inflation_rate_percent" json:"inflation_rate_percent"`
	Years                int     `yaml:"years" json:"years"`
}

// Params converts the scenario to fractional-rate parameters.
func (s Scenario) Params() model.ScenarioParameters {
	return model.FromPercent(s.InitialBalance, s.DividendRatePercent, s.InflationRatePercent, s.Years)
}

// ScenarioFromDefaults turns the configured defaults into a scenario.
func ScenarioFromDefaults(d DefaultsConfig) Scenario {
	return Scenario{
		Name:                 "default",
		InitialBalance:       d.InitialBalance,
		DividendRatePercent:  d.DividendRatePercent,
		InflationRatePercent: d.InflationRatePercent,
		Years:                d.Years,
	}
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads a YAML file holding either a single scenario or a
// `scenarios:` list.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes scenario YAML. Unknown keys are rejected so typos
// in rate names don't silently fall back to zero.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var list scenarioFile
	if err := decodeStrict(data, &list); err == nil && len(list.Scenarios) > 0 {
		return list.Scenarios, nil
	}

	var single Scenario
	if err := decodeStrict(data, &single); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if single == (Scenario{}) {
		return nil, fmt.Errorf("parsing scenario file: no scenarios found")
	}
	return []Scenario{single}, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
