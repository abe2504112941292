package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	services *Services
	store    *testutil.Store
	jobs     *testutil.Enqueuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore()
	jobs := &testutil.Enqueuer{}

	services, err := NewServicesWithDeps(testutil.NewServer(t), Deps{
		Users:     store,
		Photos:    store,
		Likes:     store,
		Passports: testutil.NewPassportStore(t),
		Jobs:      jobs,
	})
	require.NoError(t, err)

	return &fixture{services: services, store: store, jobs: jobs}
}

func (f *fixture) createUser(t *testing.T, login, password string, email *string) *user.User {
	t.Helper()

	u, err := f.services.User.Create(context.Background(), &user.CreateUserRequest{
		Login:    login,
		Password: password,
		Email:    email,
	})
	require.NoError(t, err)
	return u
}

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func strPtr(s string) *string {
	return &s
}
