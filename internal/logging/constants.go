package logging

// Standardized field names for structured logging.
// The API token is never logged under any key.
const (
	FieldEndpoint  = "endpoint"
	FieldRequestID = "request_id"
	FieldAttempt   = "attempt"
	FieldDelay     = "delay"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldMode      = "numeric_mode"
	FieldFormat    = "format"
	FieldOutput    = "output_file"
)
