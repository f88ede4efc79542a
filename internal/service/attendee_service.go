package service

import (
	"context"
	"time"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"
)

type attendeeOp int

const (
	opRSVP attendeeOp = iota
	opCancel
	opCheckIn
)

// nextAttendeeStatus applies op to the current status (nil when there is no row).
//
//	registered <-> cancelled
//	registered | none -> checked_in
//
// checked_in is terminal except for a repeated check-in.
func nextAttendeeStatus(cur *model.AttendeeStatus, op attendeeOp) (model.AttendeeStatus, error) {
	switch op {
	case opRSVP:
		if cur != nil && *cur == model.AttendeeCheckedIn {
			return "", transitionConflict("already checked in")
		}
		return model.AttendeeRegistered, nil
	case opCancel:
		if cur == nil {
			return "", apperr.NotFound("not registered for this event")
		}
		if *cur == model.AttendeeCheckedIn {
			return "", transitionConflict("already checked in")
		}
		return model.AttendeeCancelled, nil
	case opCheckIn:
		if cur != nil && *cur == model.AttendeeCancelled {
			return "", transitionConflict("registration was cancelled")
		}
		return model.AttendeeCheckedIn, nil
	}
	return "", apperr.Internal(nil)
}

func transitionConflict(msg string) *apperr.Error {
	return apperr.Conflict(apperr.ReasonInvalidTransition, msg)
}

type AttendeeService struct {
	accounts  *store.AccountRepository
	events    *store.EventRepository
	attendees *store.AttendeeRepository
	engine    *authz.Engine
	now       func() time.Time
}

func NewAttendeeService(accounts *store.AccountRepository, events *store.EventRepository, attendees *store.AttendeeRepository, engine *authz.Engine, now func() time.Time) *AttendeeService {
	return &AttendeeService{accounts: accounts, events: events, attendees: attendees, engine: engine, now: now}
}

func (s *AttendeeService) RSVP(ctx context.Context, actor authz.Identity, eventID string) (*model.EventAttendee, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventRSVP, nil); err != nil {
		return nil, err
	}
	return s.transition(ctx, eventID, actor.ID, opRSVP, nil)
}

func (s *AttendeeService) Cancel(ctx context.Context, actor authz.Identity, eventID string) (*model.EventAttendee, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventRSVP, nil); err != nil {
		return nil, err
	}
	return s.transition(ctx, eventID, actor.ID, opCancel, nil)
}

// CheckIn marks accountID as present, creating the row when the account never registered.
func (s *AttendeeService) CheckIn(ctx context.Context, actor authz.Identity, eventID, accountID string) (*model.EventAttendee, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventCheckIn, nil); err != nil {
		return nil, err
	}
	ok, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.NotFound("account not found")
	}
	by := actor.ID
	return s.transition(ctx, eventID, accountID, opCheckIn, &by)
}

func (s *AttendeeService) List(ctx context.Context, actor authz.Identity, eventID string) ([]model.EventAttendee, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventAttendees, nil); err != nil {
		return nil, err
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	out, err := s.attendees.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []model.EventAttendee{}
	}
	return out, nil
}

func (s *AttendeeService) requireEvent(ctx context.Context, eventID string) error {
	ok, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("event not found")
	}
	return nil
}

func (s *AttendeeService) transition(ctx context.Context, eventID, accountID string, op attendeeOp, checkedInBy *string) (*model.EventAttendee, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	var cur *model.AttendeeStatus
	row, err := s.attendees.Find(ctx, eventID, accountID)
	switch {
	case err == nil:
		cur = &row.Status
	case !store.IsNotFound(err):
		return nil, apperr.Internal(err)
	}

	next, err := nextAttendeeStatus(cur, op)
	if err != nil {
		return nil, err
	}
	a := &model.EventAttendee{
		ID:        pkg.NewRowID(),
		EventID:   eventID,
		AccountID: accountID,
		Status:    next,
	}
	if next == model.AttendeeCheckedIn {
		at := s.now()
		a.CheckedInAt = &at
		a.CheckedInBy = checkedInBy
	}
	if err := s.attendees.Upsert(ctx, a); err != nil {
		return nil, apperr.Internal(err)
	}
	saved, err := s.attendees.Find(ctx, eventID, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return saved, nil
}
