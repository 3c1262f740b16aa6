package services

import (
	"context"

	"github.com/dmitrijs2005/smhome/internal/server/auth"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AccessTokens issues and validates bearer tokens.
type AccessTokens interface {
	Issue(subject string) (string, error)
	Validate(token string) (*auth.Claims, error)
}

// ImageResolver turns a stored image reference into a URL the client can
// fetch.
type ImageResolver interface {
	ResolveURL(ctx context.Context, ref string) (string, error)
}
