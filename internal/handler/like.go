package handler

import (
	"net/http"
	"strconv"

	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/model/like"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
)

type LikeHandler struct {
	Handler
	likeService  *service.LikeService
	photoService *service.PhotoService
}

func NewLikeHandler(s *server.Server, likeService *service.LikeService, photoService *service.PhotoService) *LikeHandler {
	return &LikeHandler{
		Handler:      NewHandler(s),
		likeService:  likeService,
		photoService: photoService,
	}
}

// Toggle likes the photo, or cancels an existing like. Both answer 201.
func (h *LikeHandler) Toggle() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *like.ToggleLikeRequest) (*like.Result, error) {
		return h.likeService.Toggle(c.Request().Context(), middleware.GetUserID(c), payload.PhotoID)
	}, http.StatusCreated, &like.ToggleLikeRequest{})
}

// RequirePhoto answers 404 unless the :id path parameter names an existing
// photo. It runs before RequireAuth on the like route.
func (h *LikeHandler) RequirePhoto(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			return errs.NewNotFoundError("Photo not found", true, nil)
		}

		exists, err := h.photoService.Exists(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewNotFoundError("Photo not found", true, nil)
		}

		return next(c)
	}
}
