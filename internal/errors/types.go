package errors

// ErrorResponse is the JSON body of every error answer
type ErrorResponse struct {
	Error string `json:"error"`          // human-readable message
	Code  string `json:"code,omitempty"` // machine code (e.g., "unauthorized", "rate_limited")
}

type ErrorInfo struct {
	category  string
	sanitized string
}
