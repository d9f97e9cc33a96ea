package log

// Field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldIteration  = "iteration"
	FieldWithdrawal = "withdrawal"
	FieldBalance    = "final_balance"
	FieldYears      = "years"
)

// Component names.
const (
	ComponentApp      = "app"
	ComponentSolver   = "solver"
	ComponentHTTP     = "http"
	ComponentPipeline = "pipeline"
	ComponentTUI      = "tui"
)
