package errs

import (
	"net/http"
)

// New builds an HTTPError for status. A nil code defaults to the status
// text in upper snake case, e.g. TOO_MANY_REQUESTS.
func New(status int, message string, override bool, code *string) *HTTPError {
	e := &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
	if code != nil {
		e.Code = *code
	}
	return e
}

// NewBadRequestError creates a 400 HTTPError carrying per-field problems.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := New(http.StatusBadRequest, message, override, code)
	e.Errors = errors
	return e
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return New(http.StatusNotFound, message, override, code)
}

// NewInternalServerError creates a generic 500 HTTPError. Details stay in
// the logs.
func NewInternalServerError() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

// NewTooManyRequestsError creates a 429 HTTPError for rate-limited clients.
func NewTooManyRequestsError(message string) *HTTPError {
	return New(http.StatusTooManyRequests, message, false, nil)
}
