package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoRepository(t *testing.T) {
	repos := newRepositories(t)
	ctx := context.Background()

	seedUser(t, repos, "owner")
	seedUser(t, repos, "other")

	first := seedPhoto(t, repos, "owner", "first")
	seedPhoto(t, repos, "owner", "second")
	third := seedPhoto(t, repos, "owner", "third")
	seedPhoto(t, repos, "other", "elsewhere")

	t.Run("create", func(t *testing.T) {
		assert.Positive(t, first.ID)
		assert.Equal(t, "owner", first.OwnerLogin)
		assert.Nil(t, first.Description)
		assert.Zero(t, first.Likes)
		assert.False(t, first.Liked)
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("create for missing owner", func(t *testing.T) {
		_, err := repos.Photos.CreatePhoto(ctx, "nobody", &photo.CreatePhotoRequest{Title: "x", URL: "https://example.com/x.jpg"})
		requirePgError(t, err, "23503", "photos_owner_login_fkey")
	})

	t.Run("list newest first", func(t *testing.T) {
		page, err := repos.Photos.ListPhotos(ctx, "owner", 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Data, 2)
		assert.Equal(t, third.ID, page.Data[0].ID)
		assert.Equal(t, "second", page.Data[1].Title)

		page, err = repos.Photos.ListPhotos(ctx, "owner", 2, 2)
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, first.ID, page.Data[0].ID)
	})

	t.Run("list is owner scoped", func(t *testing.T) {
		page, err := repos.Photos.ListPhotos(ctx, "other", 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "elsewhere", page.Data[0].Title)
	})

	t.Run("get reports likes per viewer", func(t *testing.T) {
		_, err := repos.Likes.Toggle(ctx, "other", third.ID)
		require.NoError(t, err)

		seen, err := repos.Photos.GetPhotoByID(ctx, "other", third.ID)
		require.NoError(t, err)
		assert.True(t, seen.Liked)
		assert.Equal(t, int64(1), seen.Likes)

		seen, err = repos.Photos.GetPhotoByID(ctx, "owner", third.ID)
		require.NoError(t, err)
		assert.False(t, seen.Liked)
		assert.Equal(t, int64(1), seen.Likes)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repos.Photos.GetPhotoByID(ctx, "owner", third.ID+1000)
		assert.True(t, errors.Is(err, pgx.ErrNoRows))
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repos.Photos.Exists(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repos.Photos.Exists(ctx, third.ID+1000)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
