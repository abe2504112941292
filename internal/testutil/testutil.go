// Package testutil provides test doubles for the data stores: an
// in-memory store and recording enqueuer for services, handlers and the
// router, miniredis for passports, and a PostgreSQL container for the
// repositories.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/repository"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Config returns a valid configuration tuned for tests: cheap bcrypt and a
// rate limit tests never hit.
func Config() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			SecretKey:   "test-secret-key-0123456789",
			PassportTTL: time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
		Integration: config.IntegrationConfig{
			ResendAPIKey: "re_test",
			EmailFrom:    config.DefaultEmailFrom,
		},
		RateLimit: &config.RateLimitConfig{
			Rate:      1000,
			Burst:     1000,
			ExpiresIn: time.Minute,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// NewServer returns a Server with a silent logger and no connections.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	return &server.Server{
		Config: Config(),
		Logger: &logger,
	}
}

// NewRedis starts an in-memory Redis for the duration of the test.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// NewPassportStore returns the real Redis passport repository backed by
// an in-memory Redis.
func NewPassportStore(t *testing.T) *repository.PassportRepository {
	t.Helper()

	client, _ := NewRedis(t)
	return repository.NewPassportRepository(client)
}

// Enqueuer records the tasks it is given.
type Enqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task

	// Err, when set, is returned by every EnqueueContext call.
	Err error
}

func (e *Enqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Err != nil {
		return nil, e.Err
	}

	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Payload: task.Payload()}, nil
}

// Tasks returns the task types enqueued so far.
func (e *Enqueuer) Tasks() []*asynq.Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]*asynq.Task(nil), e.tasks...)
}
