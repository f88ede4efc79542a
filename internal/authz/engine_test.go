package authz

import (
	"context"
	"errors"
	"testing"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/model"
)

type staticGrants map[model.Role][]string

func (g staticGrants) PermissionsFor(_ context.Context, role model.Role) ([]string, error) {
	return g[role], nil
}

type failingGrants struct{}

func (failingGrants) PermissionsFor(context.Context, model.Role) ([]string, error) {
	return nil, errors.New("db down")
}

func active(id string, role model.Role) Identity {
	return Identity{ID: id, Role: role, Active: true}
}

func TestAuthorizeRoleGate(t *testing.T) {
	e := NewEngine(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      Identity
		action  Action
		res     *Resource
		allowed bool
		via     Via
		reason  string
	}{
		{"secretary writes events", active("USR000002", model.RoleSecretary), ActionEventCreate, nil, true, ViaRole, ""},
		{"president cannot write events", active("USR000003", model.RolePresident), ActionEventCreate, nil, false, "", apperr.ReasonRoleRequired},
		{"president writes timeline", active("USR000003", model.RolePresident), ActionTimelineCreate, nil, true, ViaRole, ""},
		{"secretary cannot write timeline", active("USR000002", model.RoleSecretary), ActionTimelineUpdate, nil, false, "", apperr.ReasonRoleRequired},
		{"member reads timeline", active("USR000004", model.RoleMember), ActionTimelineRead, nil, true, ViaRole, ""},
		{"anonymous never passes", Anonymous(), ActionPollCreate, nil, false, "", apperr.ReasonRoleRequired},
		{"inactive denied", Identity{ID: "USR000005", Role: model.RoleAdmin}, ActionUserList, nil, false, "", apperr.ReasonNotActivated},
		{"unknown action", active("USR000001", model.RoleAdmin), Action("nope"), nil, false, "", apperr.ReasonRoleRequired},
		{"owner updates profile", active("USR000004", model.RoleMember), ActionProfileUpdate, OwnedBy("USR000004"), true, ViaOwner, ""},
		{"stranger cannot update profile", active("USR000006", model.RoleMember), ActionProfileUpdate, OwnedBy("USR000004"), false, "", apperr.ReasonRoleRequired},
		{"president updates any profile", active("USR000003", model.RolePresident), ActionProfileUpdate, OwnedBy("USR000004"), true, ViaRole, ""},
		{"admin cannot accept for others", active("USR000001", model.RoleAdmin), ActionConnectionAccept, OwnedBy("USR000004"), false, "", apperr.ReasonNotOwner},
		{"target accepts", active("USR000004", model.RoleMember), ActionConnectionAccept, OwnedBy("USR000004"), true, ViaOwner, ""},
		{"poll creator closes", active("USR000004", model.RoleMember), ActionPollClose, OwnedBy("USR000004"), true, ViaOwner, ""},
		{"nil resource has no owners", active("USR000004", model.RoleMember), ActionPollDelete, nil, false, "", apperr.ReasonRoleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.Authorize(ctx, tt.id, tt.action, tt.res)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Allowed != tt.allowed {
				t.Fatalf("Expected allowed=%v, got %v (reason %q)", tt.allowed, d.Allowed, d.Reason)
			}
			if d.Via != tt.via {
				t.Errorf("Expected via %q, got %q", tt.via, d.Via)
			}
			if d.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, d.Reason)
			}
		})
	}
}

func TestDenialCarriesRequiredAndActual(t *testing.T) {
	e := NewEngine(nil)
	d, _ := e.Authorize(context.Background(), active("USR000004", model.RoleMember), ActionBlogCreate, nil)

	err := d.Err()
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if ae.Kind != apperr.KindForbidden {
		t.Errorf("Expected forbidden, got %v", ae.Kind)
	}
	if len(ae.Required) != 2 || ae.Required[0] != "admin" || ae.Required[1] != "secretary" {
		t.Errorf("unexpected required roles %v", ae.Required)
	}
	if ae.Actual != "member" {
		t.Errorf("Expected actual role member, got %q", ae.Actual)
	}
}

func TestGrantsWidenUnlockedActionsOnly(t *testing.T) {
	grants := staticGrants{
		model.RoleMember: {string(ActionTimelineCreate), string(ActionUserChangeRole)},
	}
	e := NewEngine(grants)
	ctx := context.Background()
	member := active("USR000004", model.RoleMember)

	d, err := e.Authorize(ctx, member, ActionTimelineCreate, nil)
	if err != nil || !d.Allowed || d.Via != ViaGrant {
		t.Fatalf("expected grant to allow timeline.create, got %+v err=%v", d, err)
	}

	d, err = e.Authorize(ctx, member, ActionUserChangeRole, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Allowed {
		t.Errorf("locked action must not be widened by a grant")
	}
}

func TestGrantSourceFailure(t *testing.T) {
	e := NewEngine(failingGrants{})
	member := active("USR000004", model.RoleMember)

	if _, err := e.Authorize(context.Background(), member, ActionEventCreate, nil); err == nil {
		t.Fatal("expected grant source error")
	}
	if !apperr.Is(e.Require(context.Background(), member, ActionEventCreate, nil), apperr.KindInternal) {
		t.Error("expected Require to surface an internal error")
	}
	// a role-gate hit never consults grants
	admin := active("USR000001", model.RoleAdmin)
	if err := e.Require(context.Background(), admin, ActionEventCreate, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanViewPrivate(t *testing.T) {
	owner := "USR000004"
	tests := []struct {
		name   string
		viewer Identity
		want   bool
	}{
		{"anonymous", Anonymous(), false},
		{"owner", active(owner, model.RoleMember), true},
		{"inactive owner", Identity{ID: owner, Role: model.RoleMember}, true},
		{"admin", active("USR000001", model.RoleAdmin), true},
		{"president", active("USR000003", model.RolePresident), true},
		{"secretary", active("USR000002", model.RoleSecretary), false},
		{"other member", active("USR000009", model.RoleMember), false},
		{"inactive admin", Identity{ID: "USR000001", Role: model.RoleAdmin}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewPrivate(tt.viewer, owner); got != tt.want {
				t.Errorf("CanViewPrivate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckRoleChange(t *testing.T) {
	admin := active("USR000001", model.RoleAdmin)

	for _, role := range []model.Role{model.RoleMember, model.RoleSecretary, model.RolePresident} {
		err := CheckRoleChange(admin, admin.ID, role)
		if !apperr.HasReason(err, apperr.ReasonSelfDemotion) {
			t.Errorf("self-demotion to %s: expected SelfDemotion, got %v", role, err)
		}
	}
	if err := CheckRoleChange(admin, admin.ID, model.RoleAdmin); err != nil {
		t.Errorf("keeping admin must be allowed, got %v", err)
	}
	if err := CheckRoleChange(admin, "USR000004", model.RoleMember); err != nil {
		t.Errorf("changing another account must be allowed, got %v", err)
	}
}
