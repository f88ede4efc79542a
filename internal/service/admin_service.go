package service

import (
	"context"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"
)

type AdminService struct {
	accounts *store.AccountRepository
	engine   *authz.Engine
	sessions *SessionService
	audit    *Auditor
	email    *EmailService
}

func NewAdminService(accounts *store.AccountRepository, engine *authz.Engine, sessions *SessionService, audit *Auditor, email *EmailService) *AdminService {
	return &AdminService{accounts: accounts, engine: engine, sessions: sessions, audit: audit, email: email}
}

func (s *AdminService) ListUsers(ctx context.Context, actor authz.Identity, role model.Role, p Page) (PageResult[AccountView], error) {
	if err := s.engine.Require(ctx, actor, authz.ActionUserList, nil); err != nil {
		return PageResult[AccountView]{}, err
	}
	if role != "" && !role.Valid() {
		return PageResult[AccountView]{}, invalidRole("role", role)
	}
	accts, total, err := s.accounts.List(ctx, role, p.Offset(), p.Limit)
	if err != nil {
		return PageResult[AccountView]{}, apperr.Internal(err)
	}
	views := make([]AccountView, 0, len(accts))
	for i := range accts {
		views = append(views, NewAccountView(&accts[i]))
	}
	return newPageResult(views, p, total), nil
}

func (s *AdminService) find(ctx context.Context, id string) (*model.Account, error) {
	acct, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}
	return acct, nil
}

// ChangeRole sets the target's role. An admin cannot move themself off admin.
func (s *AdminService) ChangeRole(ctx context.Context, actor authz.Identity, targetID string, role model.Role) (*model.Account, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionUserChangeRole, nil); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, invalidRole("role", role)
	}
	if err := authz.CheckRoleChange(actor, targetID, role); err != nil {
		return nil, err
	}
	acct, err := s.find(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if acct.Role == role {
		return acct, nil
	}
	prev := acct.Role
	if err := s.accounts.UpdateRole(ctx, acct.ID, role); err != nil {
		return nil, apperr.Internal(err)
	}
	acct.Role = role
	s.audit.Record(ctx, AuditRoleChanged, actor.ID, acct.ID, map[string]string{"from": string(prev), "to": string(role)})
	return acct, nil
}

// SetActive activates or deactivates the target. Deactivation revokes its sessions.
func (s *AdminService) SetActive(ctx context.Context, actor authz.Identity, targetID string, active bool) (*model.Account, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionUserActivate, nil); err != nil {
		return nil, err
	}
	if !active && actor.ID == targetID {
		return nil, apperr.Conflict(apperr.ReasonSelfAction, "an admin cannot deactivate themself")
	}
	acct, err := s.find(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if acct.IsActive == active {
		return acct, nil
	}
	if err := s.accounts.SetActive(ctx, acct.ID, active); err != nil {
		return nil, apperr.Internal(err)
	}
	acct.IsActive = active

	if active {
		s.audit.Record(ctx, AuditActivated, actor.ID, acct.ID, nil)
		s.email.NotifyActivated(ctx, acct)
	} else {
		if err := s.sessions.EndAll(ctx, acct.ID); err != nil {
			return nil, apperr.Internal(err)
		}
		s.audit.Record(ctx, AuditDeactivated, actor.ID, acct.ID, nil)
	}
	return acct, nil
}

// DeleteAccount removes the target; its authored content survives with a null reference.
func (s *AdminService) DeleteAccount(ctx context.Context, actor authz.Identity, targetID string) error {
	if err := s.engine.Require(ctx, actor, authz.ActionUserDelete, nil); err != nil {
		return err
	}
	if actor.ID == targetID {
		return apperr.Conflict(apperr.ReasonSelfAction, "an admin cannot delete themself")
	}
	ok, err := s.accounts.Delete(ctx, targetID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("account not found")
	}
	if err := s.sessions.EndAll(ctx, targetID); err != nil {
		return apperr.Internal(err)
	}
	s.audit.Record(ctx, AuditDeleted, actor.ID, targetID, nil)
	return nil
}

func invalidRole(field string, role model.Role) *apperr.Error {
	return apperr.Validation("invalid role", apperr.FieldError{
		Field:   field,
		Rule:    "oneof",
		Message: "role must be one of admin, president, secretary, member; got " + string(role),
	})
}
