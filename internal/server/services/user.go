// Package services contains server-side business logic. This file implements
// UserService, which handles signup and signin.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
)

// AuthResult is returned by a successful signin.
type AuthResult struct {
	AccessToken string
	TokenType   string
	User        *models.User
}

// UserService provides credential operations:
// - Signup: create users with a hashed password
// - Signin: verify credentials and mint an access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      AccessTokens

	dummyOnce sync.Once
	dummy     string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens AccessTokens) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Signup registers email with password. The username is the part of the
// email before the first "@". An existing email yields common.ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		Email:          email,
		HashedPassword: hash,
		Username:       usernameFromEmail(email),
	})
	if err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, nil
}

// Signin verifies credentials and issues an access token whose subject is
// the email. Unknown email and wrong password both yield
// common.ErrInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same hashing time as a real check
			s.hasher.Verify(password, s.dummyHash())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &AuthResult{AccessToken: token, TokenType: common.TokenTypeBearer, User: user}, nil
}

func (s *UserService) dummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummy, _ = s.hasher.Hash("smhome-timing-equalizer")
	})
	return s.dummy
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
