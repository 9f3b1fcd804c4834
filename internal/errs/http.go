package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Kind classifies an error independently of its localized message so clients
// can branch on it.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindConflict         Kind = "conflict"
	KindStore            Kind = "store"
	KindRateLimited      Kind = "rate_limited"
	KindInternal         Kind = "internal"
)

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRetry tells the client to retry after Value seconds.
	ActionTypeRetry ActionType = "retry"
)

// Action is an optional instruction for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type serialized for every failed request.
//
//   - Code: machine-friendly code (e.g. "BAD_REQUEST", "USER_ALREADY_EXISTS").
//   - Kind: error category (validation, not_found, ...).
//   - Message: human-friendly, localized message.
//   - Status: HTTP status code.
//   - Override: whether clients may show Message verbatim.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Kind     Kind   `json:"kind"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
	Action *Action      `json:"action"`

	// cause is the underlying error. Never serialized.
	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Cause returns the wrapped error, nil when the HTTPError is the root.
func (e *HTTPError) Cause() error {
	return e.cause
}

// Is matches any *HTTPError, regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithCause returns a copy of the error wrapping cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	clone := *e
	clone.cause = cause
	return &clone
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
