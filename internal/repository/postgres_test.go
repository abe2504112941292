package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/repository"
	"github.com/deppfellow/photogram/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	s := testutil.NewDatabaseServer(t)
	return &repository.Repositories{
		Users:  repository.NewUserRepository(s),
		Photos: repository.NewPhotoRepository(s),
		Likes:  repository.NewLikeRepository(s),
	}
}

func seedUser(t *testing.T, repos *repository.Repositories, login string) *user.User {
	t.Helper()

	u, err := repos.Users.CreateOne(context.Background(), &user.User{Login: login, PasswordHash: "hash-" + login})
	require.NoError(t, err)
	return u
}

func seedPhoto(t *testing.T, repos *repository.Repositories, owner, title string) *photo.Photo {
	t.Helper()

	p, err := repos.Photos.CreatePhoto(context.Background(), owner, &photo.CreatePhotoRequest{
		Title: title,
		URL:   "https://example.com/" + title + ".jpg",
	})
	require.NoError(t, err)
	return p
}

func requirePgError(t *testing.T, err error, code, constraint string) {
	t.Helper()

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected *pgconn.PgError, got %v", err)
	require.Equal(t, code, pgErr.Code)
	require.Equal(t, constraint, pgErr.ConstraintName)
}

func strPtr(s string) *string {
	return &s
}
