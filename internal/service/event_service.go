package service

import (
	"context"
	"strings"
	"time"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"

	"gorm.io/datatypes"
)

// EventInput carries only the keys present in the request body.
type EventInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Time        *string `json:"time" binding:"omitempty,datetime=15:04"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	// Host is an account id, username or email; anything else is kept as a free-text name.
	Host *string `json:"host" binding:"omitempty,max=128"`
}

type EventView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Time        string    `json:"time"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	HostID      *string   `json:"host_id"`
	HostName    *string   `json:"host_name"`
	Host        *string   `json:"host"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventService struct {
	accounts *store.AccountRepository
	events   *store.EventRepository
	engine   *authz.Engine
}

func NewEventService(accounts *store.AccountRepository, events *store.EventRepository, engine *authz.Engine) *EventService {
	return &EventService{accounts: accounts, events: events, engine: engine}
}

func (s *EventService) List(ctx context.Context, p Page) (PageResult[EventView], error) {
	events, total, err := s.events.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return PageResult[EventView]{}, apperr.Internal(err)
	}
	return newPageResult(s.views(ctx, events), p, total), nil
}

func (s *EventService) Get(ctx context.Context, id string) (*EventView, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.views(ctx, []model.Event{*e})[0]
	return &v, nil
}

func (s *EventService) find(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err)
	}
	return e, nil
}

func (s *EventService) Create(ctx context.Context, actor authz.Identity, in EventInput) (*EventView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventCreate, nil); err != nil {
		return nil, err
	}
	var missing []apperr.FieldError
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		missing = append(missing, requiredField("name"))
	}
	if in.Date == nil {
		missing = append(missing, requiredField("date"))
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("invalid input", missing...)
	}

	changes, err := s.changes(ctx, in)
	if err != nil {
		return nil, err
	}
	creator := actor.ID
	e := &model.Event{
		Name:      changes["name"].(string),
		Date:      changes["date"].(datatypes.Date),
		CreatedBy: &creator,
	}
	if v, ok := changes["address"].(string); ok {
		e.Address = v
	}
	if v, ok := changes["time"].(string); ok {
		e.Time = v
	}
	if v, ok := changes["description"].(string); ok {
		e.Description = v
	}
	if v, ok := changes["host_id"].(*string); ok {
		e.HostID = v
	}
	if v, ok := changes["host_name"].(*string); ok {
		e.HostName = v
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, e.ID)
}

// Update writes only the supplied keys. A request with none is a not-found no-op.
func (s *EventService) Update(ctx context.Context, actor authz.Identity, id string, in EventInput) (*EventView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionEventUpdate, nil); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	changes, err := s.changes(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, apperr.NoChanges()
	}
	if name, ok := changes["name"]; ok && name == "" {
		return nil, apperr.Validation("invalid input", requiredField("name"))
	}
	if err := s.events.Update(ctx, id, changes); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, actor authz.Identity, id string) error {
	if err := s.engine.Require(ctx, actor, authz.ActionEventDelete, nil); err != nil {
		return err
	}
	ok, err := s.events.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("event not found")
	}
	return nil
}

func (s *EventService) changes(ctx context.Context, in EventInput) (map[string]any, error) {
	c := map[string]any{}
	if in.Name != nil {
		c["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		c["address"] = *in.Address
	}
	if in.Time != nil {
		c["time"] = *in.Time
	}
	if in.Date != nil {
		d, err := time.Parse(dateLayout, *in.Date)
		if err != nil {
			return nil, apperr.Validation("invalid input", apperr.FieldError{
				Field: "date", Rule: "datetime", Message: "date must be YYYY-MM-DD",
			})
		}
		c["date"] = datatypes.Date(d)
	}
	if in.Description != nil {
		c["description"] = *in.Description
	}
	if in.Host != nil {
		hostID, hostName, err := s.resolveHost(ctx, *in.Host)
		if err != nil {
			return nil, err
		}
		c["host_id"], c["host_name"] = hostID, hostName
	}
	return c, nil
}

// resolveHost prefers a live account; otherwise the value is kept as a free-text name.
// Setting one side always clears the other.
func (s *EventService) resolveHost(ctx context.Context, host string) (*string, *string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, nil, nil
	}
	acct, err := s.accounts.FindByIdentifier(ctx, host)
	if err == nil {
		return &acct.ID, nil, nil
	}
	if !store.IsNotFound(err) {
		return nil, nil, apperr.Internal(err)
	}
	return nil, &host, nil
}

func (s *EventService) views(ctx context.Context, events []model.Event) []EventView {
	ids := make([]*string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].HostID)
	}
	found := lookupAccounts(ctx, s.accounts, ids...)

	out := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{
			ID:          e.ID,
			Name:        e.Name,
			Address:     e.Address,
			Time:        e.Time,
			Date:        time.Time(e.Date).Format(dateLayout),
			Description: e.Description,
			HostID:      e.HostID,
			HostName:    e.HostName,
			CreatedBy:   e.CreatedBy,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		}
		if ref := refOf(found, e.HostID); ref != nil {
			v.Host = &ref.Username
		} else if e.HostName != nil {
			v.Host = e.HostName
		}
		out = append(out, v)
	}
	return out
}

func requiredField(field string) apperr.FieldError {
	return apperr.FieldError{Field: field, Rule: "required", Message: field + " is required"}
}
