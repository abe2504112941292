package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/lib/job"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/rs/zerolog"
)

type UserService struct {
	server    *server.Server
	users     UserRepository
	passports PassportStore
	jobs      job.Enqueuer
}

func NewUserService(s *server.Server, users UserRepository, passports PassportStore, jobs job.Enqueuer) *UserService {
	return &UserService{
		server:    s,
		users:     users,
		passports: passports,
		jobs:      jobs,
	}
}

func (s *UserService) Create(ctx context.Context, payload *user.CreateUserRequest) (*user.User, error) {
	hash, err := hashPassword(payload.Password, s.server.Config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.CreateOne(ctx, &user.User{
		Login:        payload.Login,
		PasswordHash: hash,
		Email:        payload.Email,
		Name:         payload.Name,
	})
	if err != nil {
		return nil, err
	}

	if created.Email != nil {
		s.enqueueWelcome(ctx, created)
	}

	return created, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *user.User) {
	if s.jobs == nil {
		return
	}

	log := zerolog.Ctx(ctx)

	task, err := job.NewWelcomeEmailTask(*u.Email, u.DisplayName())
	if err != nil {
		log.Error().Err(err).Str("login", u.Login).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
		log.Error().Err(err).Str("login", u.Login).Msg("failed to enqueue welcome email")
	}
}

// Reflect returns the user a passport belongs to. A passport of a user
// that no longer exists is unauthorized.
func (s *UserService) Reflect(ctx context.Context, login string) (*user.User, error) {
	u, err := s.users.SelectOne(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NewUnauthorizedError("User no longer exists", true)
	}
	return u, nil
}

// Update applies a partial update. Changing the login or the password ends
// every session of the user.
func (s *UserService) Update(ctx context.Context, login string, payload *user.UpdateUserRequest) (*user.User, error) {
	existing, err := s.Reflect(ctx, login)
	if err != nil {
		return nil, err
	}

	patch := user.Patch{
		Login: payload.Login,
		Email: payload.Email,
		Name:  payload.Name,
	}
	if payload.Password != nil {
		hash, err := hashPassword(*payload.Password, s.server.Config.Auth.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	revoke := patch.ChangesCredentials(existing)

	updated, err := s.users.UpdateOne(ctx, existing, patch)
	if err != nil {
		return nil, err
	}

	// The update is already saved; a failed revoke leaves the old
	// passports to expire on their own.
	if revoke {
		if err := s.passports.RevokeAll(ctx, login); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("login", login).Msg("failed to revoke passports after credential change")
		}
	}

	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, login string) (*user.DeleteResult, error) {
	deleted, err := s.users.DeleteOne(ctx, login)
	if err != nil {
		return nil, err
	}

	if err := s.passports.RevokeAll(ctx, login); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("login", login).Msg("failed to revoke passports of deleted user")
	}

	return &user.DeleteResult{Deleted: deleted}, nil
}
