package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

const (
	CodeInvalidInput  = "invalid_input"
	CodeMediaError    = "media_error"
	CodeNotFound      = "not_found"
	CodeBusy          = "busy"
	CodeTooLarge      = "too_large"
	CodeNotAnImage    = "not_an_image"
	CodeUnavailable   = "unavailable"
	CodeInternalError = "internal_error"
)
