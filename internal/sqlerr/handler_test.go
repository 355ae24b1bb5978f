package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vehicle-information/internal/errs"
)

func Test_MapCode(t *testing.T) {
	tests := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"08006": ConnectionException,
		"53300": InsufficientResource,
		"57014": QueryCanceled,
		"42601": Other,
		"":      Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), "sqlstate %q", state)
	}
}

func Test_MapSeverity_UnknownIsError(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("LOUD"))
}

func Test_HandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "vehicle_details",
		ConstraintName: "vehicle_details_vehicle_key",
	}

	err := HandleError(fmt.Errorf("insert details: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "VEHICLE_DETAIL_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Vehicle Detail with this Vehicle already exists", httpErr.Message)
}

func Test_HandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "vehicle_price", ColumnName: "final_price"}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "The Final Price is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "final_price", httpErr.Errors[0].Field)
}

func Test_HandleError_ConnectionFailureIsInternal(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "08006"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "The vehicle database is currently unavailable", httpErr.Message)
}

func Test_HandleError_NoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("table:vehicle_details: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Vehicle Detail not found", httpErr.Message)
}

func Test_HandleError_DeadlineAndUnknown(t *testing.T) {
	deadline := HandleError(context.DeadlineExceeded)
	unknown := HandleError(errors.New("boom"))

	assert.Equal(t, "The vehicle database did not answer in time", deadline.Error())
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), unknown.Error())
}

func Test_HandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Vehicle not found", true, nil)

	assert.Same(t, original, HandleError(original))
}
