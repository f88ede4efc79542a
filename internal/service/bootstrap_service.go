package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

var ErrAlreadyBootstrapped = errors.New("an admin account already exists")

// PermissionSeed is the YAML seed file:
//
//	roles:
//	  member: [timeline.read]
//	  president: [event.create]
type PermissionSeed struct {
	Roles map[model.Role][]string `yaml:"roles"`
}

func LoadPermissionSeed(r io.Reader) (PermissionSeed, error) {
	var seed PermissionSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return PermissionSeed{}, fmt.Errorf("parse permission seed: %w", err)
	}
	for role, perms := range seed.Roles {
		if !role.Valid() {
			return PermissionSeed{}, fmt.Errorf("parse permission seed: unknown role %q", role)
		}
		clean, err := normalizePermissions(perms)
		if err != nil {
			return PermissionSeed{}, fmt.Errorf("parse permission seed: role %s: %w", role, err)
		}
		seed.Roles[role] = clean
	}
	return seed, nil
}

// BootstrapService performs the one-time seed: schema, permissions and the first admin.
type BootstrapService struct {
	db       *gorm.DB
	accounts *store.AccountRepository
	perms    *store.PermissionRepository
}

func NewBootstrapService(db *gorm.DB) *BootstrapService {
	return &BootstrapService{
		db:       db,
		accounts: &store.AccountRepository{DB: db},
		perms:    &store.PermissionRepository{DB: db},
	}
}

func (s *BootstrapService) Migrate() error {
	return store.Migrate(s.db)
}

// SeedPermissions replaces the set of every role named in the seed; other roles are untouched.
func (s *BootstrapService) SeedPermissions(ctx context.Context, seed PermissionSeed) error {
	for _, role := range model.AllRoles {
		perms, ok := seed.Roles[role]
		if !ok {
			continue
		}
		if err := s.perms.Replace(ctx, role, perms); err != nil {
			return fmt.Errorf("seed %s permissions: %w", role, err)
		}
	}
	return nil
}

// CreateFirstAdmin creates an active admin unless one already exists.
func (s *BootstrapService) CreateFirstAdmin(ctx context.Context, in SignupInput) (*model.Account, error) {
	n, err := s.accounts.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAlreadyBootstrapped
	}
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	var missing []apperr.FieldError
	if email == "" {
		missing = append(missing, requiredField("email"))
	}
	if username == "" {
		missing = append(missing, requiredField("username"))
	}
	if len(in.Password) < 8 {
		missing = append(missing, apperr.FieldError{Field: "password", Rule: "min", Message: "password needs at least 8 characters"})
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("invalid bootstrap admin", missing...)
	}

	hash, err := pkg.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	acct := &model.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if store.IsDuplicate(err) {
			return nil, duplicateAccount(err)
		}
		return nil, err
	}
	return acct, nil
}
