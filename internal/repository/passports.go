package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	passportKeyPrefix     = "passport:"
	passportUserKeyPrefix = "passport:user:"
)

// PassportRepository stores passport sessions in Redis.
//
// passport:<jti> holds the login the passport was issued to and expires
// with the passport. passport:user:<login> is the set of that user's live
// jtis, used to revoke them all at once.
type PassportRepository struct {
	redis *redis.Client
}

func NewPassportRepository(client *redis.Client) *PassportRepository {
	return &PassportRepository{redis: client}
}

func passportKey(jti string) string {
	return passportKeyPrefix + jti
}

func passportUserKey(login string) string {
	return passportUserKeyPrefix + login
}

// Save registers a session for jti valid for ttl.
func (r *PassportRepository) Save(ctx context.Context, jti, login string, ttl time.Duration) error {
	pipe := r.redis.TxPipeline()
	pipe.Set(ctx, passportKey(jti), login, ttl)
	pipe.SAdd(ctx, passportUserKey(login), jti)
	pipe.Expire(ctx, passportUserKey(login), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save passport session for login=%s: %w", login, err)
	}
	return nil
}

// Active returns the login a live session belongs to, "" when the session
// expired or was revoked.
func (r *PassportRepository) Active(ctx context.Context, jti string) (string, error) {
	login, err := r.redis.Get(ctx, passportKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read passport session: %w", err)
	}
	return login, nil
}

// Revoke ends a single session.
func (r *PassportRepository) Revoke(ctx context.Context, jti, login string) error {
	pipe := r.redis.TxPipeline()
	pipe.Del(ctx, passportKey(jti))
	pipe.SRem(ctx, passportUserKey(login), jti)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke passport session for login=%s: %w", login, err)
	}
	return nil
}

// RevokeAll ends every session of login.
func (r *PassportRepository) RevokeAll(ctx context.Context, login string) error {
	jtis, err := r.redis.SMembers(ctx, passportUserKey(login)).Result()
	if err != nil {
		return fmt.Errorf("failed to list passport sessions for login=%s: %w", login, err)
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, passportKey(jti))
	}
	keys = append(keys, passportUserKey(login))

	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke passport sessions for login=%s: %w", login, err)
	}
	return nil
}
