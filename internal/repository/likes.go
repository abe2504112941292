package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/photogram/internal/model/like"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/jackc/pgx/v5"
)

type LikeRepository struct {
	server *server.Server
}

func NewLikeRepository(s *server.Server) *LikeRepository {
	return &LikeRepository{server: s}
}

// Toggle removes login's like of photoID if it exists and adds it
// otherwise, in one transaction. A concurrent toggle that inserts first
// is absorbed by ON CONFLICT; the pair is liked either way.
func (r *LikeRepository) Toggle(ctx context.Context, login string, photoID int64) (*like.Result, error) {
	result := &like.Result{PhotoID: photoID}
	args := pgx.NamedArgs{"login": login, "photo_id": photoID}

	err := pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE login = @login AND photo_id = @photo_id`, args)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO
					likes (login, photo_id)
				VALUES
					(@login, @photo_id)
				ON CONFLICT DO NOTHING`, args)
			if err != nil {
				return fmt.Errorf("failed to insert like: %w", err)
			}
			result.Liked = true
		}

		err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE photo_id = @photo_id`, args).Scan(&result.Likes)
		if err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like login=%s photo_id=%d: %w", login, photoID, err)
	}

	return result, nil
}
