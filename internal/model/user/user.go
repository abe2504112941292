package user

import (
	"github.com/deppfellow/photogram/internal/model"
)

// User is a row of the users table. Login is the natural key.
type User struct {
	Login        string  `json:"login" db:"login"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Email        *string `json:"email" db:"email"`
	Name         *string `json:"name" db:"name"`
	model.Timestamps
}

// Patch carries the fields of a partial update. Nil fields are left alone.
type Patch struct {
	Login        *string
	PasswordHash *string
	Email        *string
	Name         *string
}

// Merge applies the set fields of p onto u in place.
func (u *User) Merge(p Patch) {
	if p.Login != nil {
		u.Login = *p.Login
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Email != nil {
		u.Email = p.Email
	}
	if p.Name != nil {
		u.Name = p.Name
	}
}

// ChangesCredentials reports whether applying p to u invalidates u's
// passports.
func (p Patch) ChangesCredentials(u *User) bool {
	if p.PasswordHash != nil {
		return true
	}
	return p.Login != nil && *p.Login != u.Login
}

// DisplayName is the name used in emails, the login when no name is set.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Login
}

// DeleteResult reports how many rows a delete removed.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
