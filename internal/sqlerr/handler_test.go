package sqlerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shutterspot/api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorPassesThroughHTTPErrors(t *testing.T) {
	original := errs.NewNotFoundError("Location not found", false, nil)

	result := HandleError(original)

	assert.Same(t, original, result)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	result := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, result, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "bookings" violates foreign key constraint`,
		TableName:      "bookings",
		ColumnName:     "location_id",
		ConstraintName: "bookings_location_id_fkey",
	}

	result := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, result, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BOOKING_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Location does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		Message:    `null value in column "title" violates not-null constraint`,
		TableName:  "locations",
		ColumnName: "title",
	}

	result := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, result, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "LOCATION_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestHandleErrorNoRowsBecomesNotFound(t *testing.T) {
	result := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, result, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorUnknownBecomesInternal(t *testing.T) {
	result := HandleError(errors.New("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, result, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
}

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlState string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"22P02", InvalidTextRepresentation},
		{"08006", ConnectionFailure},
		{"42601", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapCode(tt.sqlState), "sqlstate %s", tt.sqlState)
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("some_constraint"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
