package service

import (
	"context"
	"time"

	"Club_Portal/internal/authz"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"

	"gorm.io/gorm"
)

// SessionStore registers issued tokens. A nil store makes tokens stateless.
type SessionStore interface {
	Add(ctx context.Context, accountID, jti string, ttl time.Duration) error
	Exists(ctx context.Context, accountID, jti string) (bool, error)
	Delete(ctx context.Context, accountID, jti string) error
	DeleteAll(ctx context.Context, accountID string) (int, error)
}

type Deps struct {
	DB       *gorm.DB
	Tokens   *pkg.TokenService
	Sessions SessionStore
	Audit    AuditSink
	Mailer   Mailer
	Now      func() time.Time
}

type Services struct {
	Engine      *authz.Engine
	Sessions    *SessionService
	Auth        *AuthService
	Admin       *AdminService
	Profiles    *ProfileService
	Connections *ConnectionService
	Events      *EventService
	Attendees   *AttendeeService
	Blogs       *BlogService
	Timeline    *TimelineService
	Polls       *PollService
	Permissions *PermissionService
}

func New(d Deps) *Services {
	if d.Now == nil {
		d.Now = time.Now
	}
	accounts := &store.AccountRepository{DB: d.DB}
	perms := &store.PermissionRepository{DB: d.DB}
	engine := authz.NewEngine(perms)
	auditor := NewAuditor(d.Audit, d.Now)
	sessions := NewSessionService(d.Tokens, accounts, d.Sessions)

	return &Services{
		Engine:      engine,
		Sessions:    sessions,
		Auth:        NewAuthService(accounts, sessions),
		Admin:       NewAdminService(accounts, engine, sessions, auditor, NewEmailService(d.Mailer)),
		Profiles:    NewProfileService(accounts, &store.ProfileRepository{DB: d.DB}, engine),
		Connections: NewConnectionService(accounts, &store.ConnectionRepository{DB: d.DB}, engine),
		Events:      NewEventService(accounts, &store.EventRepository{DB: d.DB}, engine),
		Attendees:   NewAttendeeService(accounts, &store.EventRepository{DB: d.DB}, &store.AttendeeRepository{DB: d.DB}, engine, d.Now),
		Blogs:       NewBlogService(accounts, &store.BlogRepository{DB: d.DB}, engine, auditor),
		Timeline:    NewTimelineService(accounts, &store.TimelineRepository{DB: d.DB}, engine),
		Polls:       NewPollService(&store.PollRepository{DB: d.DB}, engine, d.Now),
		Permissions: NewPermissionService(perms, engine, auditor),
	}
}
