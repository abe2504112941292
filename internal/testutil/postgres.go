package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/database"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	loggerPkg "github.com/deppfellow/photogram/internal/logger"
)

const postgresImage = "postgres:16-alpine"

// NewDatabaseServer starts a throwaway PostgreSQL container, applies the
// migrations and returns a Server whose DB points at it. The test is
// skipped under -short or when no container runtime is reachable.
func NewDatabaseServer(t *testing.T) *server.Server {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("photogram"),
		postgres.WithUsername("photogram"),
		postgres.WithPassword("photogram"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := Config()
	cfg.Database = config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "photogram",
		Password:        "photogram",
		Name:            "photogram",
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: 300,
		ConnMaxIdleTime: 60,
	}

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	db, err := database.New(cfg, &logger, &loggerPkg.LoggerService{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &server.Server{
		Config: cfg,
		Logger: &logger,
		DB:     db,
	}
}
