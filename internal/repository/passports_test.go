package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPassportRepository(t *testing.T) (*PassportRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPassportRepository(client), mr
}

func TestPassportRepository_SaveAndActive(t *testing.T) {
	repo, mr := newTestPassportRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-1", "alice", time.Hour))

	login, err := repo.Active(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	assert.Equal(t, time.Hour, mr.TTL(passportKey("jti-1")))
	members, err := mr.Members(passportUserKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"jti-1"}, members)
}

func TestPassportRepository_Expiry(t *testing.T) {
	repo, mr := newTestPassportRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-1", "alice", time.Minute))
	mr.FastForward(2 * time.Minute)

	login, err := repo.Active(ctx, "jti-1")
	require.NoError(t, err)
	assert.Empty(t, login)
}

func TestPassportRepository_Revoke(t *testing.T) {
	repo, _ := newTestPassportRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-1", "alice", time.Hour))
	require.NoError(t, repo.Save(ctx, "jti-2", "alice", time.Hour))

	require.NoError(t, repo.Revoke(ctx, "jti-1", "alice"))

	login, err := repo.Active(ctx, "jti-1")
	require.NoError(t, err)
	assert.Empty(t, login)

	login, err = repo.Active(ctx, "jti-2")
	require.NoError(t, err)
	assert.Equal(t, "alice", login)
}

func TestPassportRepository_RevokeAll(t *testing.T) {
	repo, mr := newTestPassportRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-1", "alice", time.Hour))
	require.NoError(t, repo.Save(ctx, "jti-2", "alice", time.Hour))
	require.NoError(t, repo.Save(ctx, "jti-3", "bob", time.Hour))

	require.NoError(t, repo.RevokeAll(ctx, "alice"))

	for _, jti := range []string{"jti-1", "jti-2"} {
		login, err := repo.Active(ctx, jti)
		require.NoError(t, err)
		assert.Empty(t, login)
	}
	assert.False(t, mr.Exists(passportUserKey("alice")))

	login, err := repo.Active(ctx, "jti-3")
	require.NoError(t, err)
	assert.Equal(t, "bob", login)

	// Revoking a user with no sessions is a no-op.
	assert.NoError(t, repo.RevokeAll(ctx, "nobody"))
}
