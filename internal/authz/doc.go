// Package authz decides whether a resolved identity may perform an action.
//
// A decision composes three sources, evaluated in order:
//
//  1. the static role gate: the action's allow-set of roles
//  2. the ownership gate: the identity owns the target resource and the
//     action admits owners
//  3. data-driven grants: the role_permissions table lists the action
//     for the identity's role, unless the action is locked
//
// Anonymous and inactive identities are denied before any gate runs.
// Roles carry no hierarchy: president does not inherit secretary's
// permissions.
package authz
