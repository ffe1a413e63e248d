package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/domain/ports"
)

// TokenService issues and validates signed access tokens. It is a pure,
// stateless gate: validation has no side effects and there is no
// revocation list.
type TokenService struct {
	creds  ports.CredentialStore
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service. A zero ttl issues tokens
// without an expiry claim.
func NewTokenService(creds ports.CredentialStore, secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		creds:  creds,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue verifies the credentials and returns a signed HS256 token with the
// username as subject. Unknown users and wrong passwords both fail with
// entities.ErrBadCredentials.
func (s *TokenService) Issue(ctx context.Context, username, password string) (string, error) {
	cred, err := s.creds.Find(ctx, username)
	if err != nil {
		return "", fmt.Errorf("looking up credential: %w", err)
	}
	if cred == nil {
		return "", entities.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", entities.ErrBadCredentials
	}

	claims := jwt.MapClaims{"sub": username}
	if s.ttl > 0 {
		claims["exp"] = jwt.NewNumericDate(time.Now().Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token's signature, structure, and expiry when
// present, and returns its subject. Any verification failure yields
// entities.ErrInvalidToken with no further detail.
func (s *TokenService) Validate(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		// Pin the algorithm: a token signed with anything but HMAC is
		// rejected before the signature is checked.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", entities.ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", entities.ErrInvalidToken
	}
	return subject, nil
}
