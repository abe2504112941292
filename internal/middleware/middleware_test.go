package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/model/auth"
	"github.com/deppfellow/photogram/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	valid map[string]string
}

func (v stubVerifier) Verify(_ context.Context, raw string) (*auth.Claims, error) {
	login, ok := v.valid[raw]
	if !ok {
		return nil, errs.NewUnauthorizedError("Invalid passport", true)
	}
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: login, ID: "jti"}}, nil
}

func newTestEcho(t *testing.T) (*echo.Echo, *Middlewares) {
	t.Helper()

	s := testutil.NewServer(t)
	m := NewMiddlewares(s, stubVerifier{valid: map[string]string{"good": "alice"}})

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(RequestID(), m.ContextEnhancer.EnhanceContext())

	return e, m
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	e, m := newTestEcho(t)
	e.GET("/me", func(c echo.Context) error {
		assert.Equal(t, "alice", GetClaims(c).Login())
		assert.NotNil(t, zerolog.Ctx(c.Request().Context()))
		return c.String(http.StatusOK, GetUserID(c))
	}, m.Auth.RequireAuth)

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer good") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase scheme",
			setup:      func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "bearer good") },
			wantStatus: http.StatusOK,
		},
		{
			name:       "cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "good"}) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing",
			setup:      func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Passport required",
		},
		{
			name:       "wrong scheme",
			setup:      func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Basic good") },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Passport required",
		},
		{
			name:       "rejected passport",
			setup:      func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer forged") },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid passport",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				body := decodeError(t, rec)
				assert.Equal(t, tt.wantMsg, body.Message)
				assert.Equal(t, "UNAUTHORIZED", body.Code)
			} else {
				assert.Equal(t, "alice", rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Len(t, rec.Body.String(), 36)
}

func TestGlobalErrorHandler(t *testing.T) {
	e, _ := newTestEcho(t)
	e.GET("/conflict", func(echo.Context) error {
		return &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_login_key"}
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"database error", http.MethodGet, "/conflict", http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodDelete, "/conflict", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestRequestLogger_UsesMappedStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := testutil.NewServer(t)
	s.Logger = &logger
	m := NewMiddlewares(s, stubVerifier{})

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(RequestID(), m.ContextEnhancer.EnhanceContext(), m.Global.RequestLogger())
	e.POST("/user", func(echo.Context) error {
		return &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_login_key"}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/user", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	var line struct {
		Level   string `json:"level"`
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	found := false
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		require.NoError(t, json.Unmarshal(raw, &line))
		if line.Message == "API" {
			found = true
			break
		}
	}

	require.True(t, found, "no request log line in %q", buf.String())
	assert.Equal(t, http.StatusConflict, line.Status)
	assert.Equal(t, "warn", line.Level)
}

func TestRecover(t *testing.T) {
	e, m := newTestEcho(t)
	e.GET("/boom", func(echo.Context) error {
		panic("boom")
	}, m.Global.Recover())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", decodeError(t, rec).Code)
}

func TestRateLimit(t *testing.T) {
	s := testutil.NewServer(t)
	s.Config.RateLimit = &config.RateLimitConfig{Rate: 0.001, Burst: 2, ExpiresIn: config.DefaultRateLimitConfig().ExpiresIn}
	m := NewMiddlewares(s, stubVerifier{})

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.GET("/limited", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, m.RateLimit.Limit())

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
