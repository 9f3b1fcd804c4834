package errs

import (
	"math"
	"net/http"
	"strconv"
	"time"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 error.
//
// code overrides the default "BAD_REQUEST" when not nil; errors carries
// field-level details for forms.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindValidation,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewValidationError creates the 400 returned when a request payload is rejected
// before any store call.
func NewValidationError(message string, fieldErrors []FieldError) *HTTPError {
	code := "VALIDATION_FAILED"
	return NewBadRequestError(message, true, &code, fieldErrors, nil)
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindNotFound,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 error, used for unique constraint violations.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusConflict)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindConflict,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewStoreError creates a 500 for a failed persistence call. The message is
// generic; cause is kept for server-side logs.
func NewStoreError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:    "STORE_ERROR",
		Kind:    KindStore,
		Message: message,
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}

// NewTooManyRequestsError creates a 429 error with a retry action. retryAfter
// is rounded up to whole seconds, at least one.
func NewTooManyRequestsError(message string, retryAfter time.Duration) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Kind:     KindRateLimited,
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: message,
			Value:   strconv.Itoa(RetryAfterSeconds(retryAfter)),
		},
	}
}

// RetryAfterSeconds rounds d up to whole seconds, never below one.
func RetryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

// NewInternalServerError creates a generic 500. Internal details never reach
// the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Kind:    KindInternal,
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
