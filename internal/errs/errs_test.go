package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("no passport", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("taken", true, nil), http.StatusConflict, "CONFLICT"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "USER_ALREADY_EXISTS"
	err := NewConflictError("taken", true, &code)
	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("Photo not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Photo not found", wrapped.Error()[len("handler: "):])
}

func TestWithMessage(t *testing.T) {
	base := NewBadRequestError("bad", true, nil, []FieldError{{Field: "login", Error: "is required"}}, nil)
	copied := base.WithMessage("still bad")

	assert.Equal(t, "bad", base.Message)
	assert.Equal(t, "still bad", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
	assert.Equal(t, base.Status, copied.Status)
}
