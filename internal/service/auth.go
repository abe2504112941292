package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/photogram/internal/config"
	"github.com/deppfellow/photogram/internal/errs"
	"github.com/deppfellow/photogram/internal/model/auth"
	"github.com/deppfellow/photogram/internal/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const invalidCredentialsMessage = "Invalid login or password"

// AuthService issues and checks passports.
//
// A passport is an HS256 JWT whose jti names a Redis session. The JWT
// alone is not enough: the session must still exist and belong to the
// token's subject, which is what makes renew and revoke effective.
type AuthService struct {
	server    *server.Server
	users     UserRepository
	passports PassportStore

	secret []byte
	ttl    time.Duration
	now    func() time.Time

	// dummyHash is compared against on unknown logins so sign-in takes
	// the same time whether or not the login exists.
	dummyHash string
}

func NewAuthService(s *server.Server, users UserRepository, passports PassportStore) (*AuthService, error) {
	dummyHash, err := hashPassword(uuid.NewString(), s.Config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &AuthService{
		server:    s,
		users:     users,
		passports: passports,
		secret:    []byte(s.Config.Auth.SecretKey),
		ttl:       s.Config.Auth.PassportTTL,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// SignIn checks credentials and issues a passport. Unknown logins and
// wrong passwords fail identically.
func (s *AuthService) SignIn(ctx context.Context, payload *auth.SignInRequest) (*auth.Passport, error) {
	u, err := s.users.SelectOne(ctx, payload.Login)
	if err != nil {
		return nil, err
	}

	hash := s.dummyHash
	if u != nil {
		hash = u.PasswordHash
	}

	ok, err := checkPassword(hash, payload.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to check password for login=%s: %w", payload.Login, err)
	}
	if u == nil || !ok {
		return nil, errs.NewUnauthorizedError(invalidCredentialsMessage, true)
	}

	return s.Issue(ctx, u.Login)
}

// Issue signs a new passport for login and registers its session.
func (s *AuthService) Issue(ctx context.Context, login string) (*auth.Passport, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   login,
			Issuer:    config.ServiceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign passport: %w", err)
	}

	if err := s.passports.Save(ctx, claims.ID, login, s.ttl); err != nil {
		return nil, err
	}

	return &auth.Passport{
		Passport:  signed,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// Renew swaps the presented passport for a fresh one. The old passport
// stops working immediately.
func (s *AuthService) Renew(ctx context.Context, claims *auth.Claims) (*auth.Passport, error) {
	if err := s.passports.Revoke(ctx, claims.ID, claims.Login()); err != nil {
		return nil, err
	}

	return s.Issue(ctx, claims.Login())
}

// SignOut ends the session of the presented passport.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	return s.passports.Revoke(ctx, claims.ID, claims.Login())
}

// Verify parses a raw passport and checks its session. Every failure is
// a 401.
func (s *AuthService) Verify(ctx context.Context, raw string) (*auth.Claims, error) {
	claims := &auth.Claims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.ServiceName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid passport", true)
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, errs.NewUnauthorizedError("Invalid passport", true)
	}

	login, err := s.passports.Active(ctx, claims.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to look up passport session")
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}

	if login != claims.Subject {
		return nil, errs.NewUnauthorizedError("Passport expired or revoked", true)
	}

	return claims, nil
}

// RevokeAll ends every session of login.
func (s *AuthService) RevokeAll(ctx context.Context, login string) error {
	return s.passports.RevokeAll(ctx, login)
}
