package router

import (
	"github.com/deppfellow/photogram/internal/handler"
	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Auth is attached per route, not per group, so unknown paths under /api
// stay 404 instead of 401.

func registerUserRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	api.POST("/user", h.User.Create())
	api.GET("/user", h.User.Reflect(), m.Auth.RequireAuth)
	api.PATCH("/user", h.User.Update(), m.Auth.RequireAuth)
	api.DELETE("/user", h.User.Delete(), m.Auth.RequireAuth)
}

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	api.POST("/auth", h.Auth.SignIn())
	api.PATCH("/auth", h.Auth.Renew(), m.Auth.RequireAuth)
	api.DELETE("/auth", h.Auth.SignOut(), m.Auth.RequireAuth)
}

func registerPhotoRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	api.POST("/photo", h.Photo.Create(), m.Auth.RequireAuth)
	api.GET("/photo", h.Photo.List(), m.Auth.RequireAuth)
	api.GET("/photo/:id", h.Photo.Get(), m.Auth.RequireAuth)
}

func registerLikeRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	// The photo is looked up before the caller is authenticated.
	api.POST("/like/:id", h.Like.Toggle(), h.Like.RequirePhoto, m.Auth.RequireAuth)
}
