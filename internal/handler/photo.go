package handler

import (
	"net/http"

	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
)

type PhotoHandler struct {
	Handler
	photoService *service.PhotoService
}

func NewPhotoHandler(s *server.Server, photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		Handler:      NewHandler(s),
		photoService: photoService,
	}
}

func (h *PhotoHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *photo.CreatePhotoRequest) (*photo.Photo, error) {
		return h.photoService.Create(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusCreated, &photo.CreatePhotoRequest{})
}

// List pages through the caller's own photos, newest first.
func (h *PhotoHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *photo.ListPhotosRequest) (*model.PaginatedResponse[photo.Photo], error) {
		return h.photoService.List(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusOK, &photo.ListPhotosRequest{})
}

func (h *PhotoHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *photo.GetPhotoRequest) (*photo.Photo, error) {
		return h.photoService.Get(c.Request().Context(), middleware.GetUserID(c), payload.ID)
	}, http.StatusOK, &photo.GetPhotoRequest{})
}
