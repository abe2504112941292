package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/auth"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	authService *service.AuthService
}

func NewAuthHandler(s *server.Server, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler:     NewHandler(s),
		authService: authService,
	}
}

// SignIn exchanges credentials for a passport. The passport is returned in
// the body and set as a cookie.
func (h *AuthHandler) SignIn() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *auth.SignInRequest) (*auth.Passport, error) {
		passport, err := h.authService.SignIn(c.Request().Context(), payload)
		if err != nil {
			return nil, err
		}

		setPassportCookie(c, h.server.Config, passport)
		return passport, nil
	}, http.StatusCreated, &auth.SignInRequest{})
}

// Renew replaces the presented passport with a fresh one.
func (h *AuthHandler) Renew() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*auth.Passport, error) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return nil, errs.NewUnauthorizedError("Passport required", true)
		}

		passport, err := h.authService.Renew(c.Request().Context(), claims)
		if err != nil {
			return nil, err
		}

		setPassportCookie(c, h.server.Config, passport)
		return passport, nil
	}, http.StatusOK, &model.EmptyRequest{})
}

// SignOut ends the presented passport's session.
func (h *AuthHandler) SignOut() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, _ *model.EmptyRequest) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return errs.NewUnauthorizedError("Passport required", true)
		}

		if err := h.authService.SignOut(c.Request().Context(), claims); err != nil {
			return err
		}

		clearPassportCookie(c, h.server.Config)
		return nil
	}, http.StatusNoContent, &model.EmptyRequest{})
}

func setPassportCookie(c echo.Context, cfg *config.Config, passport *auth.Passport) {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    passport.Passport,
		Path:     "/",
		Expires:  passport.ExpiresAt,
		HttpOnly: true,
		Secure:   !cfg.IsLocal(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearPassportCookie(c echo.Context, cfg *config.Config) {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !cfg.IsLocal(),
		SameSite: http.SameSiteLaxMode,
	})
}
