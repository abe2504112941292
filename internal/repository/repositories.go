// Package repository handles all interactions with the data stores.
//
// Users, photos and likes live in PostgreSQL and are reached with raw SQL
// through the pgx pool. Passport sessions live in Redis.
package repository

import (
	"github.com/deppfellow/photogram/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users     *UserRepository
	Photos    *PhotoRepository
	Likes     *LikeRepository
	Passports *PassportRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(s),
		Photos:    NewPhotoRepository(s),
		Likes:     NewLikeRepository(s),
		Passports: NewPassportRepository(s.Redis),
	}
}
