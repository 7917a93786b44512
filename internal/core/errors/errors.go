package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidQueryError      = "invalid_query"
	HttpUnknownObjectTypeError = "unknown_object_type"
	HttpStoreUnavailableError  = "store_unavailable"
	HttpRunInProgressError     = "run_in_progress"
	HttpRunFailedError         = "run_failed"
)

// ErrorResponse is the error response body of the read API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
