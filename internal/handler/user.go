package handler

import (
	"net/http"

	"github.com/deppfellow/photogram/internal/middleware"
	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// Create signs a user up.
func (h *UserHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *user.CreateUserRequest) (*user.User, error) {
		return h.userService.Create(c.Request().Context(), payload)
	}, http.StatusCreated, &user.CreateUserRequest{})
}

// Reflect returns the user owning the passport.
func (h *UserHandler) Reflect() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*user.User, error) {
		return h.userService.Reflect(c.Request().Context(), middleware.GetUserID(c))
	}, http.StatusOK, &model.EmptyRequest{})
}

func (h *UserHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *user.UpdateUserRequest) (*user.User, error) {
		return h.userService.Update(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusOK, &user.UpdateUserRequest{})
}

// Delete removes the user with its photos and likes and ends its sessions.
func (h *UserHandler) Delete() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*user.DeleteResult, error) {
		result, err := h.userService.Delete(c.Request().Context(), middleware.GetUserID(c))
		if err != nil {
			return nil, err
		}

		clearPassportCookie(c, h.server.Config)
		return result, nil
	}, http.StatusOK, &model.EmptyRequest{})
}
