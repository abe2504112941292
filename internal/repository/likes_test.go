package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository(t *testing.T) {
	repos := newRepositories(t)
	ctx := context.Background()

	seedUser(t, repos, "owner")
	seedUser(t, repos, "fan")
	p := seedPhoto(t, repos, "owner", "pier")

	t.Run("toggle on and off", func(t *testing.T) {
		result, err := repos.Likes.Toggle(ctx, "fan", p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, result.PhotoID)
		assert.True(t, result.Liked)
		assert.Equal(t, int64(1), result.Likes)

		result, err = repos.Likes.Toggle(ctx, "owner", p.ID)
		require.NoError(t, err)
		assert.True(t, result.Liked)
		assert.Equal(t, int64(2), result.Likes)

		result, err = repos.Likes.Toggle(ctx, "fan", p.ID)
		require.NoError(t, err)
		assert.False(t, result.Liked)
		assert.Equal(t, int64(1), result.Likes)
	})

	t.Run("missing photo", func(t *testing.T) {
		_, err := repos.Likes.Toggle(ctx, "fan", p.ID+1000)
		requirePgError(t, err, "23503", "likes_photo_id_fkey")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repos.Likes.Toggle(ctx, "nobody", p.ID)
		requirePgError(t, err, "23503", "likes_login_fkey")
	})

	t.Run("concurrent toggles never fail", func(t *testing.T) {
		seedUser(t, repos, "racer")

		var wg sync.WaitGroup
		errCh := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repos.Likes.Toggle(ctx, "racer", p.ID)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		for err := range errCh {
			require.NoError(t, err)
		}

		seen, err := repos.Photos.GetPhotoByID(ctx, "racer", p.ID)
		require.NoError(t, err)
		if seen.Liked {
			assert.Equal(t, int64(2), seen.Likes)
		} else {
			assert.Equal(t, int64(1), seen.Likes)
		}
	})
}
