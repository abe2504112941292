package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/photogram/internal/lib/job"
	"github.com/deppfellow/photogram/internal/model/auth"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/sqlerr"
	"github.com/deppfellow/photogram/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	f := newFixture(t)

	u := f.createUser(t, "alice", "secret1", strPtr("alice@example.com"))
	assert.Equal(t, "alice", u.Login)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	tasks := f.jobs.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, job.TaskWelcome, tasks[0].Type())
}

func TestUserService_CreateWithoutEmailSkipsWelcome(t *testing.T) {
	f := newFixture(t)

	f.createUser(t, "alice", "secret1", nil)
	assert.Empty(t, f.jobs.Tasks())
}

func TestUserService_CreateDuplicate(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice", "secret1", nil)

	_, err := f.services.User.Create(context.Background(), &user.CreateUserRequest{Login: "alice", Password: "secret2"})
	require.Error(t, err)

	httpErr := requireStatus(t, sqlerr.HandleError(err), http.StatusConflict)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
}

func TestUserService_Reflect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "secret1", nil)

	u, err := f.services.User.Reflect(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Login)

	_, err = f.services.User.Reflect(ctx, "ghost")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestUserService_UpdateProfileKeepsPassports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "secret1", nil)

	passport, err := f.services.Auth.SignIn(ctx, &auth.SignInRequest{Login: "alice", Password: "secret1"})
	require.NoError(t, err)

	updated, err := f.services.User.Update(ctx, "alice", &user.UpdateUserRequest{Name: strPtr("Alice")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *updated.Name)

	_, err = f.services.Auth.Verify(ctx, passport.Passport)
	assert.NoError(t, err)
}

func TestUserService_UpdateCredentialsRevokesPassports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "secret1", nil)

	passport, err := f.services.Auth.SignIn(ctx, &auth.SignInRequest{Login: "alice", Password: "secret1"})
	require.NoError(t, err)

	updated, err := f.services.User.Update(ctx, "alice", &user.UpdateUserRequest{
		Login:    strPtr("alicia"),
		Password: strPtr("secret2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Login)

	_, err = f.services.Auth.Verify(ctx, passport.Passport)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = f.services.Auth.SignIn(ctx, &auth.SignInRequest{Login: "alicia", Password: "secret2"})
	assert.NoError(t, err)
}

func TestUserService_UpdateToTakenLogin(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice", "secret1", nil)
	f.createUser(t, "bobby", "secret1", nil)

	_, err := f.services.User.Update(context.Background(), "alice", &user.UpdateUserRequest{Login: strPtr("bobby")})
	requireStatus(t, sqlerr.HandleError(err), http.StatusConflict)
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice", "secret1", nil)

	passport, err := f.services.Auth.SignIn(ctx, &auth.SignInRequest{Login: "alice", Password: "secret1"})
	require.NoError(t, err)

	result, err := f.services.User.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted)

	_, err = f.services.Auth.Verify(ctx, passport.Passport)
	requireStatus(t, err, http.StatusUnauthorized)

	result, err = f.services.User.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Deleted)
}

type revokeFailingStore struct {
	PassportStore
}

func (revokeFailingStore) RevokeAll(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestUserService_SavedChangesSurviveRevokeFailure(t *testing.T) {
	store := testutil.NewStore()
	services, err := NewServicesWithDeps(testutil.NewServer(t), Deps{
		Users:     store,
		Photos:    store,
		Likes:     store,
		Passports: revokeFailingStore{testutil.NewPassportStore(t)},
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = services.User.Create(ctx, &user.CreateUserRequest{Login: "alice", Password: "secret1"})
	require.NoError(t, err)

	updated, err := services.User.Update(ctx, "alice", &user.UpdateUserRequest{Login: strPtr("alicia")})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Login)

	found, err := store.SelectOne(ctx, "alicia")
	require.NoError(t, err)
	require.NotNil(t, found)

	result, err := services.User.Delete(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted)
}
