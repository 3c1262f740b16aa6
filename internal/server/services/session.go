package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
)

// SessionService resolves bearer tokens to users. Nothing is cached; each
// call validates the token and reads the user again.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      AccessTokens
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, tokens AccessTokens) *SessionService {
	return &SessionService{db: db, repomanager: m, tokens: tokens}
}

// Resolve returns the user the token was issued to. Every failure wraps
// common.ErrorUnauthorized together with its cause; storage failures
// wrap common.ErrorInternal instead.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrMissingSubject)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrUnknownUser)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, nil
}
