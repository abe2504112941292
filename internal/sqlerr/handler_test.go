package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/photogram/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name: "duplicate login",
			err: fmt.Errorf("insert user: %w", &pgconn.PgError{
				Code:           "23505",
				TableName:      "users",
				ConstraintName: "users_login_key",
			}),
			wantStatus: http.StatusConflict,
			wantCode:   "USER_ALREADY_EXISTS",
			wantMsg:    "A User with this Login already exists",
		},
		{
			name: "like on missing photo",
			err: &pgconn.PgError{
				Code:           "23503",
				TableName:      "likes",
				ConstraintName: "likes_photo_id_fkey",
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "PHOTO_NOT_FOUND",
			wantMsg:    "The referenced Photo does not exist",
		},
		{
			name: "not null",
			err: &pgconn.PgError{
				Code:       "23502",
				TableName:  "photos",
				ColumnName: "title",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "PHOTO_REQUIRED",
			wantMsg:    "The Title is required",
		},
		{
			name:       "named missing row",
			err:        NotFound("photos"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Photo not found",
		},
		{
			name:       "anonymous missing row",
			err:        pgx.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Resource not found",
		},
		{
			name:       "unknown pg code",
			err:        &pgconn.PgError{Code: "XX000"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, httpErr.Message)
			}
		})
	}
}

func TestHandleError_PassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewUnauthorizedError("Passport expired", false)
	assert.Same(t, original, asHTTPError(t, HandleError(original)))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "login", extractColumnForUniqueViolation("users_login_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("users_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, Other, MapCode("99999"))
}
