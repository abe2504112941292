package service

import (
	"context"
	"errors"

	"github.com/deppfellow/photogram/internal/lib/job"
	"github.com/deppfellow/photogram/internal/model/like"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type LikeService struct {
	server *server.Server
	likes  LikeRepository
	photos PhotoRepository
	users  UserRepository
	jobs   job.Enqueuer
}

func NewLikeService(s *server.Server, likes LikeRepository, photos PhotoRepository, users UserRepository, jobs job.Enqueuer) *LikeService {
	return &LikeService{
		server: s,
		likes:  likes,
		photos: photos,
		users:  users,
		jobs:   jobs,
	}
}

// Toggle likes photoID for login, or cancels the like if it already
// exists. The result reports which state the pair ended in.
func (s *LikeService) Toggle(ctx context.Context, login string, photoID int64) (*like.Result, error) {
	result, err := s.likes.Toggle(ctx, login, photoID)
	if err != nil {
		return nil, err
	}

	if result.Liked {
		s.notifyOwner(ctx, login, photoID)
	}

	return result, nil
}

// notifyOwner emails the photo's owner about a new like. Failures are
// logged and never fail the like itself.
func (s *LikeService) notifyOwner(ctx context.Context, liker string, photoID int64) {
	if s.jobs == nil {
		return
	}

	log := zerolog.Ctx(ctx).With().Int64("photo_id", photoID).Logger()

	p, err := s.photos.GetPhotoByID(ctx, liker, photoID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load liked photo for notification")
		return
	}
	if p.OwnerLogin == liker {
		return
	}

	owner, err := s.users.SelectOne(ctx, p.OwnerLogin)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load photo owner for notification")
		return
	}
	if owner == nil || owner.Email == nil {
		return
	}

	task, err := job.NewPhotoLikedEmailTask(job.PhotoLikedEmailPayload{
		To:         *owner.Email,
		OwnerName:  owner.DisplayName(),
		LikerLogin: liker,
		PhotoID:    p.ID,
		PhotoTitle: p.Title,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build photo liked task")
		return
	}

	if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
		if isDuplicateTask(err) {
			log.Debug().Msg("photo liked email already queued")
			return
		}
		log.Error().Err(err).Msg("failed to enqueue photo liked email")
	}
}

// isDuplicateTask reports whether enqueueing failed only because an
// identical task is already queued.
func isDuplicateTask(err error) bool {
	return errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask)
}
