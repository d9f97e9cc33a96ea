// Package server exposes the withdrawal calculator as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/log"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/solver"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	RecentBuffer int // calculations kept for /v1/calculations
	Logger       *log.Logger
}

// CalculationResponse wraps a result with request metadata.
type CalculationResponse struct {
	CalculationID string              `json:"calculation_id"`
	CalculatedAt  time.Time           `json:"calculated_at"`
	DurationMs    int64               `json:"duration_ms"`
	Result        *model.SolverResult `json:"result"`
}

// ErrorResponse is returned for any non-2xx status.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Recent is a compact record of one served calculation.
type Recent struct {
	CalculationID   string          `json:"calculation_id"`
	CalculatedAt    time.Time       `json:"calculated_at"`
	Scenario        config.Scenario `json:"scenario"`
	StartWithdrawal float64         `json:"start_withdrawal"`
	Converged       bool            `json:"converged"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt     time.Time `json:"started_at"`
	Calculations  int64     `json:"calculations"`
	Rejected      int64     `json:"rejected"`
	LastError     string    `json:"last_error,omitempty"`
	RecentBuffer  int       `json:"recent_buffer"`
	RecentEntries int       `json:"recent_entries"`
}

// Service provides the HTTP API.
type Service struct {
	cfg    Config
	logger *log.Logger

	mu           sync.RWMutex
	startedAt    time.Time
	calculations int64
	rejected     int64
	lastError    string
	recent       []Recent
}

// New returns a service with defaults filled in.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultConfig().Server.Addr
	}
	if cfg.RecentBuffer < 1 {
		cfg.RecentBuffer = 50
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}

	return &Service{
		cfg:       cfg,
		logger:    logger.WithComponent(log.ComponentHTTP),
		startedAt: time.Now(),
	}
}

// Run listens on cfg.Addr and serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

// Serve handles connections from ln until ctx is canceled, then shuts down
// gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	server := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "kwsp",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: 64 << 10,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Handler returns the routed, logged request handler.
func (s *Service) Handler() fasthttp.RequestHandler {
	return s.withLogging(s.route)
}

func (s *Service) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		s.handleHealth(ctx)
	case "/v1/status":
		s.onlyGET(ctx, s.handleStatus)
	case "/v1/calculations":
		s.onlyGET(ctx, s.handleRecent)
	case "/v1/calculate":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", "")
			return
		}
		s.handleCalculate(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found", "")
	}
}

func (s *Service) onlyGET(ctx *fasthttp.RequestCtx, h fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	h(ctx)
}

func (s *Service) withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		s.logger.Info("request",
			log.FieldRequestID, ctx.ID(),
			log.FieldMethod, string(ctx.Method()),
			log.FieldPath, string(ctx.Path()),
			log.FieldStatusCode, ctx.Response.StatusCode(),
			log.FieldDuration, time.Since(start).Milliseconds(),
		)
	}
}

func (s *Service) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString("ok\n")
}

func (s *Service) handleStatus(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.snapshotStatus())
}

func (s *Service) handleRecent(ctx *fasthttp.RequestCtx) {
	s.mu.RLock()
	recent := make([]Recent, len(s.recent))
	copy(recent, s.recent)
	s.mu.RUnlock()

	writeJSON(ctx, fasthttp.StatusOK, recent)
}

func (s *Service) handleCalculate(ctx *fasthttp.RequestCtx) {
	var sc config.Scenario
	if err := json.Unmarshal(ctx.PostBody(), &sc); err != nil {
		s.recordRejection(err)
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}

	start := time.Now()
	res, err := solver.Solve(sc.Params(), solver.WithLogger(s.logger))
	if err != nil {
		s.recordRejection(err)
		var inv *model.InvalidInputError
		if errors.As(err, &inv) {
			writeError(ctx, fasthttp.StatusBadRequest, inv.Error(), inv.Field)
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error(), "")
		return
	}

	resp := CalculationResponse{
		CalculationID: uuid.New().String(),
		CalculatedAt:  time.Now().UTC(),
		DurationMs:    time.Since(start).Milliseconds(),
		Result:        res,
	}
	s.recordCalculation(Recent{
		CalculationID:   resp.CalculationID,
		CalculatedAt:    resp.CalculatedAt,
		Scenario:        sc,
		StartWithdrawal: res.StartWithdrawal,
		Converged:       res.Converged,
	})

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Service) recordCalculation(r Recent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calculations++
	s.recent = append(s.recent, r)
	if len(s.recent) > s.cfg.RecentBuffer {
		s.recent = s.recent[len(s.recent)-s.cfg.RecentBuffer:]
	}
}

func (s *Service) recordRejection(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejected++
	s.lastError = err.Error()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:     s.startedAt,
		Calculations:  s.calculations,
		Rejected:      s.rejected,
		LastError:     s.lastError,
		RecentBuffer:  s.cfg.RecentBuffer,
		RecentEntries: len(s.recent),
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encoding response", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message, field string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, Field: field})
}
