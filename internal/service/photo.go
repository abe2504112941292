package service

import (
	"context"

	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/server"
)

type PhotoService struct {
	server *server.Server
	photos PhotoRepository
}

func NewPhotoService(s *server.Server, photos PhotoRepository) *PhotoService {
	return &PhotoService{
		server: s,
		photos: photos,
	}
}

func (s *PhotoService) Create(ctx context.Context, owner string, payload *photo.CreatePhotoRequest) (*photo.Photo, error) {
	return s.photos.CreatePhoto(ctx, owner, payload)
}

// List pages through the viewer's own photos.
func (s *PhotoService) List(ctx context.Context, viewer string, payload *photo.ListPhotosRequest) (*model.PaginatedResponse[photo.Photo], error) {
	limit, offset := payload.Page()
	return s.photos.ListPhotos(ctx, viewer, limit, offset)
}

// Get returns any photo by id, with the viewer's like state.
func (s *PhotoService) Get(ctx context.Context, viewer string, id int64) (*photo.Photo, error) {
	return s.photos.GetPhotoByID(ctx, viewer, id)
}

func (s *PhotoService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.photos.Exists(ctx, id)
}
