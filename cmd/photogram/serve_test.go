package main

import (
	"context"
	"testing"

	"github.com/deppfellow/photogram/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Redis, _ = testutil.NewRedis(t)

	e, err := wire(srv)
	require.NoError(t, err)
	assert.NotEmpty(t, e.Routes())
	assert.NoError(t, srv.Redis.Ping(context.Background()).Err())
}

func TestWire_ReleasesServerOnFailure(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Redis, _ = testutil.NewRedis(t)
	srv.Config.Auth.BcryptCost = 32

	_, err := wire(srv)
	require.Error(t, err)
	assert.ErrorIs(t, srv.Redis.Ping(context.Background()).Err(), redis.ErrClosed)
}
