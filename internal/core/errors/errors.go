package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpValidationError      = "validation_failed"
	HttpUnknownKindError     = "unknown_stat_kind"
	HttpInvalidWindowError   = "invalid_window"
	HttpInvalidQueryError    = "invalid_query"
	HttpPayloadTooLargeError = "payload_too_large"
)

// ErrorResponse is the error response body for every API error.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
