// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated requests from handlers, applies the rules of each operation
// and calls the repositories. Repositories are consumed through the small
// interfaces below.
package service

import (
	"context"
	"time"

	"github.com/deppfellow/photogram/internal/lib/job"
	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/like"
	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/repository"
	"github.com/deppfellow/photogram/internal/server"
)

type UserRepository interface {
	CreateOne(ctx context.Context, u *user.User) (*user.User, error)
	SelectOne(ctx context.Context, login string) (*user.User, error)
	UpdateOne(ctx context.Context, existing *user.User, patch user.Patch) (*user.User, error)
	DeleteOne(ctx context.Context, login string) (int64, error)
}

type PhotoRepository interface {
	CreatePhoto(ctx context.Context, owner string, payload *photo.CreatePhotoRequest) (*photo.Photo, error)
	GetPhotoByID(ctx context.Context, viewer string, id int64) (*photo.Photo, error)
	ListPhotos(ctx context.Context, owner string, limit, offset int) (*model.PaginatedResponse[photo.Photo], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type LikeRepository interface {
	Toggle(ctx context.Context, login string, photoID int64) (*like.Result, error)
}

// PassportStore keeps the server-side half of a passport.
type PassportStore interface {
	Save(ctx context.Context, jti, login string, ttl time.Duration) error
	Active(ctx context.Context, jti string) (string, error)
	Revoke(ctx context.Context, jti, login string) error
	RevokeAll(ctx context.Context, login string) error
}

type Services struct {
	Auth  *AuthService
	User  *UserService
	Photo *PhotoService
	Like  *LikeService
	Job   *job.JobService
}

// Deps are the stores services run against.
type Deps struct {
	Users     UserRepository
	Photos    PhotoRepository
	Likes     LikeRepository
	Passports PassportStore

	// Jobs may be nil; background emails are then skipped.
	Jobs job.Enqueuer
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	deps := Deps{
		Users:     repos.Users,
		Photos:    repos.Photos,
		Likes:     repos.Likes,
		Passports: repos.Passports,
	}
	if s.Job != nil {
		deps.Jobs = s.Job.Client
	}

	services, err := NewServicesWithDeps(s, deps)
	if err != nil {
		return nil, err
	}
	services.Job = s.Job

	return services, nil
}

// NewServicesWithDeps wires services onto arbitrary stores.
func NewServicesWithDeps(s *server.Server, deps Deps) (*Services, error) {
	authService, err := NewAuthService(s, deps.Users, deps.Passports)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:  authService,
		User:  NewUserService(s, deps.Users, deps.Passports, deps.Jobs),
		Photo: NewPhotoService(s, deps.Photos),
		Like:  NewLikeService(s, deps.Likes, deps.Photos, deps.Users, deps.Jobs),
	}, nil
}
