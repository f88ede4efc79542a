package authz

import (
	"context"
	"fmt"
	"slices"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/model"
)

// GrantSource lists the permission strings granted to a role.
type GrantSource interface {
	PermissionsFor(ctx context.Context, role model.Role) ([]string, error)
}

// Resource describes the target of an action. A nil *Resource has no owners.
type Resource struct {
	Owners []string
}

// OwnedBy builds a Resource owned by the given account ids; empty ids are skipped.
func OwnedBy(ids ...string) *Resource {
	r := &Resource{}
	for _, id := range ids {
		if id != "" {
			r.Owners = append(r.Owners, id)
		}
	}
	return r
}

func (r *Resource) ownedBy(id string) bool {
	return r != nil && id != "" && slices.Contains(r.Owners, id)
}

// Via records which gate allowed a decision.
type Via string

const (
	ViaRole  Via = "role"
	ViaOwner Via = "owner"
	ViaGrant Via = "grant"
)

// Decision is the outcome of Authorize.
type Decision struct {
	Action   Action
	Allowed  bool
	Via      Via
	Reason   string
	Required []string
	Actual   string
}

// Err converts a denial into a Forbidden error; it is nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	msg := fmt.Sprintf("not permitted to %s", d.Action)
	switch d.Reason {
	case apperr.ReasonNotActivated:
		msg = "account is not activated"
	case apperr.ReasonNotOwner:
		msg = fmt.Sprintf("only the owner may %s", d.Action)
	}
	return apperr.Forbidden(d.Reason, msg, d.Required, d.Actual)
}

type Engine struct {
	policy map[Action]Rule
	grants GrantSource
}

// NewEngine builds an engine over DefaultPolicy. grants may be nil.
func NewEngine(grants GrantSource) *Engine {
	return &Engine{policy: DefaultPolicy, grants: grants}
}

// Authorize decides whether id may perform action on res. The returned error is
// non-nil only when the grant source fails.
func (e *Engine) Authorize(ctx context.Context, id Identity, action Action, res *Resource) (Decision, error) {
	d := Decision{Action: action, Actual: id.ActualRole()}

	rule, ok := e.policy[action]
	if !ok {
		d.Reason = apperr.ReasonRoleRequired
		return d, nil
	}
	d.Required = roleNames(rule.Roles)

	if id.IsAnonymous() {
		d.Reason = apperr.ReasonRoleRequired
		return d, nil
	}
	if !id.Active {
		d.Reason = apperr.ReasonNotActivated
		return d, nil
	}

	if id.HasRole(rule.Roles...) {
		d.Allowed, d.Via = true, ViaRole
		return d, nil
	}
	if rule.Owner && res.ownedBy(id.ID) {
		d.Allowed, d.Via = true, ViaOwner
		return d, nil
	}

	if !rule.Locked && e.grants != nil {
		perms, err := e.grants.PermissionsFor(ctx, id.Role)
		if err != nil {
			return d, err
		}
		if slices.Contains(perms, string(action)) {
			d.Allowed, d.Via = true, ViaGrant
			return d, nil
		}
	}

	if rule.Owner && len(rule.Roles) == 0 {
		d.Reason = apperr.ReasonNotOwner
	} else {
		d.Reason = apperr.ReasonRoleRequired
	}
	return d, nil
}

// Require is Authorize folded into a single error.
func (e *Engine) Require(ctx context.Context, id Identity, action Action, res *Resource) error {
	d, err := e.Authorize(ctx, id, action, res)
	if err != nil {
		return apperr.Internal(err)
	}
	return d.Err()
}

// Allowed is Authorize reduced to a boolean; grant-source failures count as deny.
func (e *Engine) Allowed(ctx context.Context, id Identity, action Action, res *Resource) bool {
	d, err := e.Authorize(ctx, id, action, res)
	return err == nil && d.Allowed
}

// CanViewPrivate reports whether viewer sees the private fields of ownerID's profile.
func CanViewPrivate(viewer Identity, ownerID string) bool {
	if viewer.IsAnonymous() {
		return false
	}
	if viewer.ID == ownerID {
		return true
	}
	return viewer.Active && viewer.HasRole(model.RoleAdmin, model.RolePresident)
}

// CheckRoleChange rejects an actor setting their own role to anything but admin.
func CheckRoleChange(actor Identity, targetID string, newRole model.Role) error {
	if actor.ID == targetID && newRole != model.RoleAdmin {
		return apperr.Conflict(apperr.ReasonSelfDemotion, "an admin cannot demote themself")
	}
	return nil
}

func roleNames(roles []model.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
