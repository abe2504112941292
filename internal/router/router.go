// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes, mapping
// specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/photogram/internal/handler"
	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the system routes and the /api routes.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	m := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the transaction and request id must exist before the
	// context logger is built, and the logger before anything logs.
	router.Use(
		m.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Tracing.EnhanceTracing(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerUserRoutes(api, h, m)
	registerAuthRoutes(api, h, m)
	registerPhotoRoutes(api, h, m)
	registerLikeRoutes(api, h, m)

	return router
}
