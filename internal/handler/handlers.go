// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, calls
// the service layer and writes the response. Errors are returned to the
// global error handler.
package handler

import (
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/service"
	"github.com/deppfellow/photogram/static"
)

// Handlers groups all HTTP handlers so router setup passes one object around.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	User    *UserHandler
	Auth    *AuthHandler
	Photo   *PhotoHandler
	Like    *LikeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.Files),
		User:    NewUserHandler(s, services.User),
		Auth:    NewAuthHandler(s, services.Auth),
		Photo:   NewPhotoHandler(s, services.Photo),
		Like:    NewLikeHandler(s, services.Like, services.Photo),
	}
}
