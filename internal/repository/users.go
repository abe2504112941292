package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

const userColumns = `login, password_hash, email, name, created_at, updated_at`

// CreateOne inserts u. A taken login surfaces as the driver's unique
// violation on users_login_key.
func (r *UserRepository) CreateOne(ctx context.Context, u *user.User) (*user.User, error) {
	stmt := `
		INSERT INTO
			users (login, password_hash, email, name)
		VALUES
			(@login, @password_hash, @email, @name)
		RETURNING
			` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"login":         u.Login,
		"password_hash": u.PasswordHash,
		"email":         u.Email,
		"name":          u.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query for login=%s: %w", u.Login, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[user.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for login=%s: %w", u.Login, err)
	}

	return created, nil
}

// SelectOne returns the user with login, or nil when there is none.
func (r *UserRepository) SelectOne(ctx context.Context, login string) (*user.User, error) {
	stmt := `
		SELECT
			` + userColumns + `
		FROM
			users
		WHERE
			login = @login`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"login": login})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select user query for login=%s: %w", login, err)
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[user.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for login=%s: %w", login, err)
	}

	return found, nil
}

// UpdateOne merges patch into existing and saves the whole record, keyed
// by the login existing had before the merge.
func (r *UserRepository) UpdateOne(ctx context.Context, existing *user.User, patch user.Patch) (*user.User, error) {
	key := existing.Login
	existing.Merge(patch)

	stmt := `
		UPDATE users
		SET
			login = @login,
			password_hash = @password_hash,
			email = @email,
			name = @name,
			updated_at = now()
		WHERE
			login = @key
		RETURNING
			` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"key":           key,
		"login":         existing.Login,
		"password_hash": existing.PasswordHash,
		"email":         existing.Email,
		"name":          existing.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update user query for login=%s: %w", key, err)
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[user.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sqlerr.NotFound("users")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for login=%s: %w", key, err)
	}

	return updated, nil
}

// DeleteOne removes the user with login and reports the rows affected.
// Photos and likes go with it through ON DELETE CASCADE.
func (r *UserRepository) DeleteOne(ctx context.Context, login string) (int64, error) {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM users WHERE login = @login`, pgx.NamedArgs{"login": login})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user login=%s: %w", login, err)
	}

	return tag.RowsAffected(), nil
}
