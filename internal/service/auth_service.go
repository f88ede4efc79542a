package service

import (
	"context"
	"strings"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"
)

type SignupInput struct {
	Email    string
	Username string
	Password string
}

type AuthService struct {
	accounts *store.AccountRepository
	sessions *SessionService
}

func NewAuthService(accounts *store.AccountRepository, sessions *SessionService) *AuthService {
	return &AuthService{accounts: accounts, sessions: sessions}
}

// Signup creates an inactive member. Duplicate email or username is a conflict and writes nothing.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.Account, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	taken, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict(apperr.ReasonDuplicateEmail, "email is already registered")
	}
	taken, err = s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict(apperr.ReasonDuplicateUsername, "username is already taken")
	}

	hash, err := pkg.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	acct := &model.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleMember,
		IsActive:     false,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if store.IsDuplicate(err) {
			return nil, duplicateAccount(err)
		}
		return nil, apperr.Internal(err)
	}
	return acct, nil
}

// normalizeEmail is the stored form of an address; lookups by email compare against it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// duplicateAccount maps a unique violation that slipped past the pre-checks.
func duplicateAccount(err error) *apperr.Error {
	if strings.Contains(strings.ToLower(err.Error()), "username") {
		return apperr.Conflict(apperr.ReasonDuplicateUsername, "username is already taken")
	}
	return apperr.Conflict(apperr.ReasonDuplicateEmail, "email is already registered")
}

// Signin accepts an email or username. Inactive accounts are refused whatever their role.
func (s *AuthService) Signin(ctx context.Context, login, password string) (*model.Account, *pkg.Token, error) {
	acct, err := s.accounts.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil, apperr.Unauthorized(apperr.ReasonInvalidCredentials, "invalid credentials")
		}
		return nil, nil, apperr.Internal(err)
	}
	if !pkg.CheckPassword(acct.PasswordHash, password) {
		return nil, nil, apperr.Unauthorized(apperr.ReasonInvalidCredentials, "invalid credentials")
	}
	if !acct.IsActive {
		return nil, nil, apperr.Forbidden(apperr.ReasonNotActivated, "account is not activated", nil, string(acct.Role))
	}
	tok, err := s.sessions.Issue(ctx, acct)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return acct, tok, nil
}

func (s *AuthService) Me(ctx context.Context, accountID string) (*model.Account, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}
	return acct, nil
}

func (s *AuthService) Signout(ctx context.Context, accountID, tokenID string) error {
	if err := s.sessions.End(ctx, accountID, tokenID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
