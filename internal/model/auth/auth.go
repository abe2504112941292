package auth

import (
	"time"

	"github.com/deppfellow/photogram/internal/validation"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie a passport is also delivered in.
const CookieName = "passport"

type SignInRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (r *SignInRequest) Validate() error {
	return validation.Struct(r)
}

// Passport is the credential returned by sign-in and renew.
type Passport struct {
	Passport  string    `json:"passport"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims are the JWT claims of a passport. Subject is the user's login
// and ID the session key in Redis.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) Login() string {
	return c.Subject
}
