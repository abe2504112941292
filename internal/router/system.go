package router

import (
	"net/http"

	"github.com/deppfellow/photogram/internal/handler"
	"github.com/deppfellow/photogram/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// API: health, docs UI and the static docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.Files)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs")
	})
}
