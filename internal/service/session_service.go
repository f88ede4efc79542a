package service

import (
	"context"
	"errors"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	rdb "Club_Portal/internal/repository/redis"
	"Club_Portal/internal/repository/store"
)

// Resolved is the outcome of resolving a bearer token.
type Resolved struct {
	Identity authz.Identity
	TokenID  string
}

type SessionService struct {
	tokens   *pkg.TokenService
	accounts *store.AccountRepository
	sessions SessionStore
}

func NewSessionService(tokens *pkg.TokenService, accounts *store.AccountRepository, sessions SessionStore) *SessionService {
	return &SessionService{tokens: tokens, accounts: accounts, sessions: sessions}
}

// Resolve turns a bearer token into an identity. An empty token resolves to anonymous.
// Nothing is written.
func (s *SessionService) Resolve(ctx context.Context, token string) (Resolved, error) {
	if token == "" {
		return Resolved{Identity: authz.Anonymous()}, nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, pkg.ErrTokenExpired) {
			return Resolved{}, apperr.Unauthorized(apperr.ReasonExpired, "token has expired")
		}
		return Resolved{}, apperr.Unauthorized(apperr.ReasonInvalidToken, "token is invalid")
	}

	if s.sessions != nil {
		ok, err := s.sessions.Exists(ctx, claims.AccountID, claims.ID)
		if err != nil {
			return Resolved{}, apperr.Internal(err)
		}
		if !ok {
			return Resolved{}, apperr.Unauthorized(apperr.ReasonInvalidToken, "session has ended")
		}
	}

	acct, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if store.IsNotFound(err) {
			return Resolved{}, apperr.Unauthorized(apperr.ReasonInvalidToken, "account no longer exists")
		}
		return Resolved{}, apperr.Internal(err)
	}
	return Resolved{
		Identity: authz.Identity{ID: acct.ID, Role: acct.Role, Active: acct.IsActive},
		TokenID:  claims.ID,
	}, nil
}

// Issue signs a token for acct and registers the session.
func (s *SessionService) Issue(ctx context.Context, acct *model.Account) (*pkg.Token, error) {
	tok, err := s.tokens.Issue(acct.ID)
	if err != nil {
		return nil, err
	}
	if s.sessions != nil {
		if err := s.sessions.Add(ctx, acct.ID, tok.ID, s.tokens.TTL()); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// End revokes one session. Without a registry it is a no-op.
func (s *SessionService) End(ctx context.Context, accountID, tokenID string) error {
	if s.sessions == nil || tokenID == "" {
		return nil
	}
	err := s.sessions.Delete(ctx, accountID, tokenID)
	if err != nil && !errors.Is(err, rdb.ErrSessionNotFound) {
		return err
	}
	return nil
}

// EndAll revokes every session of the account.
func (s *SessionService) EndAll(ctx context.Context, accountID string) error {
	if s.sessions == nil {
		return nil
	}
	_, err := s.sessions.DeleteAll(ctx, accountID)
	return err
}
