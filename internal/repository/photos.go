package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/deppfellow/photogram/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type PhotoRepository struct {
	server *server.Server
}

func NewPhotoRepository(s *server.Server) *PhotoRepository {
	return &PhotoRepository{server: s}
}

// photoColumns selects a photo with its like count and whether @viewer
// likes it.
const photoColumns = `
	p.id,
	p.owner_login,
	p.title,
	p.description,
	p.url,
	p.created_at,
	p.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.photo_id = p.id) AS likes,
	EXISTS (SELECT 1 FROM likes l WHERE l.photo_id = p.id AND l.login = @viewer) AS liked`

func (r *PhotoRepository) CreatePhoto(ctx context.Context, owner string, payload *photo.CreatePhotoRequest) (*photo.Photo, error) {
	stmt := `
		INSERT INTO
			photos (owner_login, title, description, url)
		VALUES
			(@owner_login, @title, @description, @url)
		RETURNING
			id,
			owner_login,
			title,
			description,
			url,
			created_at,
			updated_at,
			0::BIGINT AS likes,
			FALSE AS liked`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"owner_login": owner,
		"title":       payload.Title,
		"description": payload.Description,
		"url":         payload.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create photo query for owner=%s: %w", owner, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[photo.Photo])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:photos for owner=%s: %w", owner, err)
	}

	return created, nil
}

func (r *PhotoRepository) GetPhotoByID(ctx context.Context, viewer string, id int64) (*photo.Photo, error) {
	stmt := `
		SELECT
			` + photoColumns + `
		FROM
			photos p
		WHERE
			p.id = @id`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": id, "viewer": viewer})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get photo query for id=%d: %w", id, err)
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[photo.Photo])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound("photos")
		}
		return nil, fmt.Errorf("failed to collect row from table:photos for id=%d: %w", id, err)
	}

	return found, nil
}

// ListPhotos pages through owner's photos, newest first.
func (r *PhotoRepository) ListPhotos(ctx context.Context, owner string, limit, offset int) (*model.PaginatedResponse[photo.Photo], error) {
	args := pgx.NamedArgs{
		"owner":  owner,
		"viewer": owner,
		"limit":  limit,
		"offset": offset,
	}

	stmt := `
		SELECT
			` + photoColumns + `
		FROM
			photos p
		WHERE
			p.owner_login = @owner
		ORDER BY
			p.created_at DESC,
			p.id DESC
		LIMIT
			@limit
		OFFSET
			@offset`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list photos query for owner=%s: %w", owner, err)
	}

	photos, err := pgx.CollectRows(rows, pgx.RowToStructByName[photo.Photo])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:photos for owner=%s: %w", owner, err)
	}

	var total int64
	err = r.server.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE owner_login = @owner`, args).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos for owner=%s: %w", owner, err)
	}

	return &model.PaginatedResponse[photo.Photo]{
		Data:   photos,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	}, nil
}

func (r *PhotoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM photos WHERE id = @id)`, pgx.NamedArgs{"id": id}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check photo id=%d: %w", id, err)
	}

	return exists, nil
}
