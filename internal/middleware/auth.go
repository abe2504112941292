package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/model/auth"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/labstack/echo/v4"
)

// ClaimsKey stores the verified *auth.Claims in Echo context.
const ClaimsKey = "passport_claims"

// PassportVerifier checks a raw passport and returns its claims.
type PassportVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

// AuthMiddleware holds the app Server so middleware can access shared deps
// like Logger and Config.
type AuthMiddleware struct {
	server   *server.Server
	verifier PassportVerifier
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, verifier PassportVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		verifier: verifier,
	}
}

// RequireAuth is an Echo middleware that enforces authentication with a
// passport.
//
// High-level behavior:
//  1. It reads the passport from "Authorization: Bearer <passport>", or
//     from the passport cookie when the header is absent.
//  2. It verifies the signature and the server-side session.
//  3. It stores the login and claims into Echo context and tags the
//     request logger with the login.
//  4. It calls the next handler.
func (a *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		raw := passportFromRequest(c.Request())
		if raw == "" {
			GetLogger(c).Debug().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("request has no passport")

			return errs.NewUnauthorizedError("Passport required", true)
		}

		claims, err := a.verifier.Verify(c.Request().Context(), raw)
		if err != nil {
			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("passport rejected")

			return err
		}

		login := claims.Login()
		c.Set(UserIDKey, login)
		c.Set(ClaimsKey, claims)

		contextLogger := GetLogger(c).With().Str("user_id", login).Logger()
		c.Set(LoggerKey, &contextLogger)
		c.SetRequest(c.Request().WithContext(contextLogger.WithContext(c.Request().Context())))

		contextLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// passportFromRequest returns the bearer token, or the passport cookie.
func passportFromRequest(r *http.Request) string {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// GetClaims returns the claims RequireAuth verified, nil on public routes.
func GetClaims(c echo.Context) *auth.Claims {
	if claims, ok := c.Get(ClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
