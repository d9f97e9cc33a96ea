// Package report renders withdrawal calculations as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/kwsp/internal/cli"
	"github.com/theirongolddev/kwsp/internal/model"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight
)

// Options controls report content.
type Options struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	res    *model.SolverResult
	opts   Options
	encode func(string) string
}

// PDF renders res into a single PDF document.
func PDF(res *model.SolverResult, opts Options) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no result to report")
	}
	if opts.Title == "" {
		opts.Title = "KWSP Retirement Withdrawal Plan"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	r := &pdfReport{
		pdf:  fpdf.New("P", "mm", "A4", ""),
		res:  res,
		opts: opts,
	}
	// Core fonts are Latin-1; translate so symbols outside ASCII survive.
	r.encode = r.pdf.UnicodeTranslatorFromDescriptor("")

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle(opts.Title, true)
	r.pdf.SetCreationDate(opts.GeneratedAt)

	r.pdf.AddPage()
	r.addHeader()
	r.addInputs()
	r.addResults()
	r.addSchedule()
	r.addFooterNote()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) money(v float64) string {
	return r.encode(cli.FormatCurrency(r.opts.Currency, v))
}

func (r *pdfReport) addHeader() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, r.encode(r.opts.Title), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", r.opts.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *pdfReport) addInputs() {
	p := r.res.Params
	r.drawSectionHeader("Inputs")
	r.drawKeyValues([][2]string{
		{"Initial balance", r.money(p.InitialBalance)},
		{"Annual dividend rate", cli.FormatRate(p.DividendRate)},
		{"Annual inflation rate", cli.FormatRate(p.InflationRate)},
		{"Time period", cli.FormatYears(p.Years)},
	})
	r.pdf.Ln(4)
}

func (r *pdfReport) addResults() {
	r.drawSectionHeader("Results")
	r.drawKeyValues([][2]string{
		{"Maximum starting monthly withdrawal", r.money(r.res.StartWithdrawal)},
		{"Final balance", r.money(r.res.FinalBalance)},
		{"Total withdrawals", r.money(r.res.TotalWithdrawals)},
		{"Total dividends", r.money(r.res.TotalDividends)},
	})
	if !r.res.Converged {
		r.pdf.SetFont("Arial", "I", 9)
		r.pdf.SetTextColor(180, 0, 0)
		r.pdf.MultiCell(contentWidth, 5,
			fmt.Sprintf("The search did not reach the target balance within %d iterations; figures are a best estimate.", r.res.Iterations),
			"", "L", false)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addSchedule() {
	r.drawSectionHeader("Annual Withdrawal Schedule")

	headers := []string{"Year", "Monthly Withdrawal", "Annual Withdrawal", "Dividend"}
	widths := []float64{20, 55, 55, contentWidth - 130}
	r.drawTableHeader(headers, widths)

	dividends := make(map[int]float64, len(r.res.Trace))
	for _, rec := range r.res.Trace {
		dividends[rec.Year] = rec.Dividend
	}

	for i, e := range r.res.Schedule.Entries() {
		if r.pdf.GetY() > 297-marginBottom-10 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			fmt.Sprintf("%d", e.Year),
			r.money(e.Monthly),
			r.money(e.Annual),
			r.money(dividends[e.Year]),
		}, widths, false, i%2 == 1)
	}
	r.drawTableRow([]string{
		"Total",
		"",
		r.money(r.res.TotalWithdrawals),
		r.money(r.res.TotalDividends),
	}, widths, true, false)
}

func (r *pdfReport) addFooterNote() {
	r.pdf.Ln(8)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4, strings.Join([]string{
		"Withdrawals are taken at each month end and rise with inflation every year.",
		"Dividends are credited on 31 December on the average daily balance of the year.",
		"This is not financial advice.",
	}, " "), "", "C", false)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawKeyValues(rows [][2]string) {
	for _, kv := range rows {
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(90, 6, kv[0], "", 0, "L", false, 0, "")
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetTextColor(30, 30, 30)
		r.pdf.CellFormat(contentWidth-90, 6, kv[1], "", 1, "R", false, 0, "")
	}
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, bold, shaded bool) {
	r.pdf.SetTextColor(50, 50, 50)
	switch {
	case bold:
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(235, 235, 235)
	case shaded:
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetFillColor(245, 247, 250)
	default:
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetFillColor(255, 255, 255)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
