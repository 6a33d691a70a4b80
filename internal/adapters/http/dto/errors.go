// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

// ErrorResponse is the envelope written for every non-2xx API response:
//
//	{"error":{"code":"NOT_FOUND","message":"...","details":{...}},"traceId":"..."}
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the body of the envelope. Details carries the offending
// field for a rejected request, or the path and line for a malformed
// doctrine file.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeInvalidDocument = "INVALID_DOCUMENT"
	ErrorCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal        = "INTERNAL_ERROR"
	ErrorCodeTimeout         = "TIMEOUT"
)

// NewErrorResponse returns an envelope with no details and no trace ID.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithTraceID stamps the envelope with the request's trace ID.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// WithDetail records key=value under details. Empty values are dropped so
// optional context (a line number, an expected type) can be passed through
// unconditionally.
func (e *ErrorResponse) WithDetail(key, value string) *ErrorResponse {
	if value == "" {
		return e
	}

	if e.Error.Details == nil {
		e.Error.Details = make(map[string]string)
	}
	e.Error.Details[key] = value

	return e
}
