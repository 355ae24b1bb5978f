package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Constructors(t *testing.T) {
	custom := "VEHICLE_INVALID"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{name: "bad_request_default_code", err: NewBadRequestError("bad", false, nil, nil), status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "bad_request_custom_code", err: NewBadRequestError("bad", true, &custom, nil), status: http.StatusBadRequest, code: custom},
		{name: "not_found", err: NewNotFoundError("Route not found", false, nil), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "internal", err: NewInternalServerError(), status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR"},
		{name: "too_many_requests", err: NewTooManyRequestsError("slow down"), status: http.StatusTooManyRequests, code: "TOO_MANY_REQUESTS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func Test_HTTPError_IsAndWithMessage(t *testing.T) {
	base := NewNotFoundError("Resource not found", false, nil)
	wrapped := fmt.Errorf("loading: %w", base)

	var target *HTTPError
	assert.True(t, errors.As(wrapped, &target))
	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	changed := base.WithMessage("Vehicle not found")
	assert.Equal(t, "Vehicle not found", changed.Error())
	assert.Equal(t, "Resource not found", base.Message)
}

func Test_New_DerivesCodeFromStatus(t *testing.T) {
	err := New(http.StatusRequestEntityTooLarge, "submission too large", false, nil)

	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", err.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, err.Status)
	assert.Nil(t, err.Errors)
}
