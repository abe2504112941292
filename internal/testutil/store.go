package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/photogram/internal/model"
	"github.com/deppfellow/photogram/internal/model/like"
	"github.com/deppfellow/photogram/internal/model/photo"
	"github.com/deppfellow/photogram/internal/model/user"
	"github.com/deppfellow/photogram/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

type likeKey struct {
	login   string
	photoID int64
}

// Store is an in-memory users/photos/likes database. It reproduces the
// constraint errors and cascades of the PostgreSQL schema so errors flow
// through sqlerr the same way.
type Store struct {
	mu     sync.Mutex
	users  map[string]user.User
	photos map[int64]photo.Photo
	likes  map[likeKey]time.Time
	nextID int64
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]user.User),
		photos: make(map[int64]photo.Photo),
		likes:  make(map[likeKey]time.Time),
		now:    time.Now,
	}
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        fmt.Sprintf("insert or update on table %q violates foreign key constraint %q", table, constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

// ---- users ----

func (s *Store) CreateOne(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Login]; ok {
		return nil, fmt.Errorf("failed to collect row from table:users for login=%s: %w", u.Login, uniqueViolation("users", "users_login_key"))
	}

	created := *u
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.users[created.Login] = created

	return &created, nil
}

func (s *Store) SelectOne(_ context.Context, login string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[login]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) UpdateOne(_ context.Context, existing *user.User, patch user.Patch) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := existing.Login
	if _, ok := s.users[key]; !ok {
		return nil, sqlerr.NotFound("users")
	}

	existing.Merge(patch)
	if existing.Login != key {
		if _, taken := s.users[existing.Login]; taken {
			return nil, uniqueViolation("users", "users_login_key")
		}
	}

	updated := *existing
	updated.UpdatedAt = s.now()
	delete(s.users, key)
	s.users[updated.Login] = updated

	if updated.Login != key {
		for id, p := range s.photos {
			if p.OwnerLogin == key {
				p.OwnerLogin = updated.Login
				s.photos[id] = p
			}
		}
		for k, at := range s.likes {
			if k.login == key {
				delete(s.likes, k)
				s.likes[likeKey{login: updated.Login, photoID: k.photoID}] = at
			}
		}
	}

	return &updated, nil
}

func (s *Store) DeleteOne(_ context.Context, login string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[login]; !ok {
		return 0, nil
	}

	delete(s.users, login)
	for id, p := range s.photos {
		if p.OwnerLogin == login {
			s.deletePhotoLocked(id)
		}
	}
	for k := range s.likes {
		if k.login == login {
			delete(s.likes, k)
		}
	}

	return 1, nil
}

// ---- photos ----

func (s *Store) CreatePhoto(_ context.Context, owner string, payload *photo.CreatePhotoRequest) (*photo.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[owner]; !ok {
		return nil, foreignKeyViolation("photos", "photos_owner_login_fkey")
	}

	s.nextID++
	now := s.now()
	p := photo.Photo{
		ID:          s.nextID,
		OwnerLogin:  owner,
		Title:       payload.Title,
		Description: payload.Description,
		URL:         payload.URL,
		Timestamps:  model.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	s.photos[p.ID] = p

	return &p, nil
}

func (s *Store) GetPhotoByID(_ context.Context, viewer string, id int64) (*photo.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.photos[id]
	if !ok {
		return nil, sqlerr.NotFound("photos")
	}

	p = s.withLikesLocked(p, viewer)
	return &p, nil
}

func (s *Store) ListPhotos(_ context.Context, owner string, limit, offset int) (*model.PaginatedResponse[photo.Photo], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned []photo.Photo
	for _, p := range s.photos {
		if p.OwnerLogin == owner {
			owned = append(owned, s.withLikesLocked(p, owner))
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	page := []photo.Photo{}
	if offset < len(owned) {
		end := min(offset+limit, len(owned))
		page = owned[offset:end]
	}

	return &model.PaginatedResponse[photo.Photo]{
		Data:   page,
		Limit:  limit,
		Offset: offset,
		Total:  int64(len(owned)),
	}, nil
}

func (s *Store) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.photos[id]
	return ok, nil
}

func (s *Store) withLikesLocked(p photo.Photo, viewer string) photo.Photo {
	p.Likes = s.countLikesLocked(p.ID)
	_, p.Liked = s.likes[likeKey{login: viewer, photoID: p.ID}]
	return p
}

func (s *Store) deletePhotoLocked(id int64) {
	delete(s.photos, id)
	for k := range s.likes {
		if k.photoID == id {
			delete(s.likes, k)
		}
	}
}

// ---- likes ----

func (s *Store) Toggle(_ context.Context, login string, photoID int64) (*like.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[login]; !ok {
		return nil, foreignKeyViolation("likes", "likes_login_fkey")
	}
	if _, ok := s.photos[photoID]; !ok {
		return nil, foreignKeyViolation("likes", "likes_photo_id_fkey")
	}

	key := likeKey{login: login, photoID: photoID}
	result := &like.Result{PhotoID: photoID}

	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
	} else {
		s.likes[key] = s.now()
		result.Liked = true
	}
	result.Likes = s.countLikesLocked(photoID)

	return result, nil
}

func (s *Store) countLikesLocked(photoID int64) int64 {
	var n int64
	for k := range s.likes {
		if k.photoID == photoID {
			n++
		}
	}
	return n
}
