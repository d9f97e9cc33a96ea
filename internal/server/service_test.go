package server

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/theirongolddev/kwsp/internal/solver"
)

func do(t *testing.T, s *Service, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	s.Handler()(&ctx)
	return &ctx
}

func TestCalculate(t *testing.T) {
	s := New(Config{})
	ctx := do(t, s, fasthttp.MethodPost, "/v1/calculate",
		`{"initial_balance":1300000,"dividend_rate_percent":5.2,"inflation_rate_percent":5,"years":20}`)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	var resp struct {
		CalculationID string `json:"calculation_id"`
		Result        struct {
			StartWithdrawal float64 `json:"start_withdrawal"`
			FinalBalance    float64 `json:"final_balance"`
			Converged       bool    `json:"converged"`
			Schedule        []struct {
				Year    int     `json:"year"`
				Monthly float64 `json:"monthly_withdrawal"`
			} `json:"schedule"`
			Trace []struct {
				Dividend float64 `json:"dividend_credited"`
			} `json:"trace"`
		} `json:"result"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.CalculationID == "" {
		t.Fatal("missing calculation_id")
	}
	want, _ := solver.Calculate(1_300_000, 5.2, 5, 20)
	if resp.Result.StartWithdrawal != want.StartWithdrawal {
		t.Fatalf("start_withdrawal = %v, want %v", resp.Result.StartWithdrawal, want.StartWithdrawal)
	}
	if !resp.Result.Converged || math.Abs(resp.Result.FinalBalance) >= solver.Tolerance {
		t.Fatalf("result not converged: %+v", resp.Result)
	}
	if len(resp.Result.Schedule) != 20 || resp.Result.Schedule[19].Year != 20 {
		t.Fatalf("schedule rows = %d", len(resp.Result.Schedule))
	}
	if len(resp.Result.Trace) != 20 {
		t.Fatalf("trace rows = %d, want 20", len(resp.Result.Trace))
	}

	st := s.snapshotStatus()
	if st.Calculations != 1 || st.RecentEntries != 1 {
		t.Fatalf("status = %+v, want one calculation recorded", st)
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	s := New(Config{})
	ctx := do(t, s, fasthttp.MethodPost, "/v1/calculate",
		`{"initial_balance":0,"dividend_rate_percent":5.2,"inflation_rate_percent":5,"years":20}`)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
	var er ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &er); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	if er.Field != "initial_balance" {
		t.Fatalf("field = %q, want initial_balance", er.Field)
	}
	if s.snapshotStatus().Rejected != 1 {
		t.Fatal("rejection not counted")
	}
}

func TestCalculateRejectsHorizonBeyondMax(t *testing.T) {
	s := New(Config{})
	ctx := do(t, s, fasthttp.MethodPost, "/v1/calculate",
		`{"initial_balance":1300000,"dividend_rate_percent":5.2,"inflation_rate_percent":5,"years":1125899906842624}`)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
	var er ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &er); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	if er.Field != "years" {
		t.Fatalf("field = %q, want years", er.Field)
	}
}

func TestCalculateMalformedBody(t *testing.T) {
	s := New(Config{})
	ctx := do(t, s, fasthttp.MethodPost, "/v1/calculate", `{"years":`)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
}

func TestMethodAndRouteErrors(t *testing.T) {
	s := New(Config{})
	if got := do(t, s, fasthttp.MethodGet, "/v1/calculate", "").Response.StatusCode(); got != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("GET /v1/calculate = %d, want 405", got)
	}
	if got := do(t, s, fasthttp.MethodPost, "/v1/status", "").Response.StatusCode(); got != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("POST /v1/status = %d, want 405", got)
	}
	if got := do(t, s, fasthttp.MethodGet, "/nope", "").Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", got)
	}
	ctx := do(t, s, fasthttp.MethodGet, "/healthz", "")
	if string(ctx.Response.Body()) != "ok\n" {
		t.Fatalf("healthz body = %q", ctx.Response.Body())
	}
}

func TestRecentRingBuffer(t *testing.T) {
	s := New(Config{RecentBuffer: 2})

	s.recordCalculation(Recent{CalculationID: "1"})
	s.recordCalculation(Recent{CalculationID: "2"})
	s.recordCalculation(Recent{CalculationID: "3"})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.recent) != 2 {
		t.Fatalf("recent len = %d, want 2", len(s.recent))
	}
	if s.recent[0].CalculationID != "2" || s.recent[1].CalculationID != "3" {
		t.Fatalf("recent holds [%s, %s], want [2, 3]", s.recent[0].CalculationID, s.recent[1].CalculationID)
	}
	if s.calculations != 3 {
		t.Fatalf("calculations = %d, want 3", s.calculations)
	}
}

func TestServeOverListenerAndShutdown(t *testing.T) {
	ln := fasthttputil.NewInmemoryListener()
	s := New(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://kwsp/healthz")
	req.SetConnectionClose()
	if err := client.DoTimeout(req, resp, 2*time.Second); err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
