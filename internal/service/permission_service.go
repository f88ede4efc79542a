package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"
)

type RolePermissions struct {
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions"`
}

type PermissionService struct {
	perms  *store.PermissionRepository
	engine *authz.Engine
	audit  *Auditor
}

func NewPermissionService(perms *store.PermissionRepository, engine *authz.Engine, audit *Auditor) *PermissionService {
	return &PermissionService{perms: perms, engine: engine, audit: audit}
}

// List returns every role, including roles without grants.
func (s *PermissionService) List(ctx context.Context, actor authz.Identity) ([]RolePermissions, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionRoleRead, nil); err != nil {
		return nil, err
	}
	all, err := s.perms.All(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]RolePermissions, 0, len(model.AllRoles))
	for _, r := range model.AllRoles {
		perms := all[r]
		if perms == nil {
			perms = []string{}
		}
		out = append(out, RolePermissions{Role: r, Permissions: perms})
	}
	return out, nil
}

func (s *PermissionService) Get(ctx context.Context, actor authz.Identity, role model.Role) (*RolePermissions, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionRoleRead, nil); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperr.NotFound("role not found")
	}
	perms, err := s.perms.PermissionsFor(ctx, role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if perms == nil {
		perms = []string{}
	}
	return &RolePermissions{Role: role, Permissions: perms}, nil
}

// Replace swaps the role's whole permission set.
func (s *PermissionService) Replace(ctx context.Context, actor authz.Identity, role model.Role, perms []string) (*RolePermissions, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionRoleWrite, nil); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperr.NotFound("role not found")
	}
	clean, err := normalizePermissions(perms)
	if err != nil {
		return nil, err
	}
	if err := s.perms.Replace(ctx, role, clean); err != nil {
		return nil, apperr.Internal(err)
	}
	s.audit.Record(ctx, AuditPermissionsChanged, actor.ID, string(role), map[string]string{
		"permissions": strings.Join(clean, ","),
	})
	return &RolePermissions{Role: role, Permissions: clean}, nil
}

// normalizePermissions trims, dedupes and sorts, rejecting unknown actions field by field.
func normalizePermissions(perms []string) ([]string, error) {
	var bad []apperr.FieldError
	out := make([]string, 0, len(perms))
	for i, p := range perms {
		p = strings.TrimSpace(p)
		if !authz.KnownAction(p) {
			bad = append(bad, apperr.FieldError{
				Field:   fmt.Sprintf("permissions[%d]", i),
				Rule:    "known_action",
				Message: fmt.Sprintf("unknown permission %q", p),
			})
			continue
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if len(bad) > 0 {
		return nil, apperr.Validation("invalid permissions", bad...)
	}
	slices.Sort(out)
	return out, nil
}
