package authz

import "Club_Portal/internal/model"

type Action string

const (
	ActionReadSelf Action = "account.read_self"
	ActionSignOut  Action = "account.signout"

	ActionProfileCreate Action = "profile.create"
	ActionProfileUpdate Action = "profile.update"

	ActionConnectionList    Action = "connection.list"
	ActionConnectionRequest Action = "connection.request"
	ActionConnectionAccept  Action = "connection.accept"
	ActionConnectionRemove  Action = "connection.remove"
	ActionConnectionBlock   Action = "connection.block"

	ActionEventCreate    Action = "event.create"
	ActionEventUpdate    Action = "event.update"
	ActionEventDelete    Action = "event.delete"
	ActionEventRSVP      Action = "event.rsvp"
	ActionEventCheckIn   Action = "event.checkin"
	ActionEventAttendees Action = "event.attendees"

	ActionBlogCreate         Action = "blog.create"
	ActionBlogUpdate         Action = "blog.update"
	ActionBlogDelete         Action = "blog.delete"
	ActionBlogViewUnapproved Action = "blog.view_unapproved"
	ActionBlogApprove        Action = "blog.approve"

	ActionTimelineRead   Action = "timeline.read"
	ActionTimelineCreate Action = "timeline.create"
	ActionTimelineUpdate Action = "timeline.update"
	ActionTimelineDelete Action = "timeline.delete"

	ActionPollCreate Action = "poll.create"
	ActionPollVote   Action = "poll.vote"
	ActionPollClose  Action = "poll.close"
	ActionPollDelete Action = "poll.delete"

	ActionUserList       Action = "user.list"
	ActionUserChangeRole Action = "user.role"
	ActionUserActivate   Action = "user.activate"
	ActionUserDelete     Action = "user.delete"
	ActionRoleRead       Action = "role.read"
	ActionRoleWrite      Action = "role.write"
)

// Rule is the static policy for one action.
type Rule struct {
	// Roles is the allow-set of the role gate.
	Roles []model.Role
	// Owner admits identities listed as owners of the target resource.
	Owner bool
	// Locked actions ignore data-driven grants.
	Locked bool
}

var (
	anyRole   = model.AllRoles
	adminOnly = []model.Role{model.RoleAdmin}
	adminSec  = []model.Role{model.RoleAdmin, model.RoleSecretary}
	adminPres = []model.Role{model.RoleAdmin, model.RolePresident}
	ownerOnly []model.Role
)

// DefaultPolicy maps every gated action to its rule.
var DefaultPolicy = map[Action]Rule{
	ActionReadSelf: {Roles: anyRole},
	ActionSignOut:  {Roles: anyRole},

	ActionProfileCreate: {Roles: anyRole},
	ActionProfileUpdate: {Roles: adminPres, Owner: true},

	ActionConnectionList:    {Roles: anyRole},
	ActionConnectionRequest: {Roles: anyRole},
	ActionConnectionAccept:  {Roles: ownerOnly, Owner: true, Locked: true},
	ActionConnectionRemove:  {Roles: ownerOnly, Owner: true, Locked: true},
	ActionConnectionBlock:   {Roles: ownerOnly, Owner: true, Locked: true},

	ActionEventCreate:    {Roles: adminSec},
	ActionEventUpdate:    {Roles: adminSec},
	ActionEventDelete:    {Roles: adminSec},
	ActionEventRSVP:      {Roles: anyRole},
	ActionEventCheckIn:   {Roles: adminSec},
	ActionEventAttendees: {Roles: adminSec},

	ActionBlogCreate:         {Roles: adminSec},
	ActionBlogUpdate:         {Roles: adminSec},
	ActionBlogDelete:         {Roles: adminSec},
	ActionBlogViewUnapproved: {Roles: adminOnly, Owner: true},
	ActionBlogApprove:        {Roles: adminOnly, Locked: true},

	ActionTimelineRead:   {Roles: anyRole},
	ActionTimelineCreate: {Roles: adminPres},
	ActionTimelineUpdate: {Roles: adminPres},
	ActionTimelineDelete: {Roles: adminPres},

	ActionPollCreate: {Roles: anyRole},
	ActionPollVote:   {Roles: anyRole},
	ActionPollClose:  {Roles: adminOnly, Owner: true},
	ActionPollDelete: {Roles: adminOnly, Owner: true},

	ActionUserList:       {Roles: adminOnly},
	ActionUserChangeRole: {Roles: adminOnly, Locked: true},
	ActionUserActivate:   {Roles: adminOnly, Locked: true},
	ActionUserDelete:     {Roles: adminOnly, Locked: true},
	ActionRoleRead:       {Roles: adminOnly},
	ActionRoleWrite:      {Roles: adminOnly, Locked: true},
}

// KnownAction reports whether name is an action of DefaultPolicy.
func KnownAction(name string) bool {
	_, ok := DefaultPolicy[Action(name)]
	return ok
}
