package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/photogram/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI. The page loads its JS from a CDN
// and the document from /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	static fs.FS
}

func NewOpenAPIHandler(s *server.Server, static fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		static:  static,
	}
}

// ServeOpenAPIUI serves openapi.html uncached so doc updates show up
// immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.static, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	return c.HTMLBlob(http.StatusOK, page)
}
