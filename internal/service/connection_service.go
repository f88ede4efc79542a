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

type ConnectionView struct {
	ID        string                 `json:"id"`
	Status    model.ConnectionStatus `json:"status"`
	Direction string                 `json:"direction"`
	Other     *AccountRef            `json:"user"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type ConnectionService struct {
	accounts    *store.AccountRepository
	connections *store.ConnectionRepository
	engine      *authz.Engine
}

func NewConnectionService(accounts *store.AccountRepository, connections *store.ConnectionRepository, engine *authz.Engine) *ConnectionService {
	return &ConnectionService{accounts: accounts, connections: connections, engine: engine}
}

func (s *ConnectionService) requireOther(ctx context.Context, actor authz.Identity, otherID string) error {
	if actor.ID == otherID {
		return apperr.Invalid(apperr.ReasonSelfConnect, "cannot connect to yourself")
	}
	ok, err := s.accounts.Exists(ctx, otherID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("account not found")
	}
	return nil
}

// Request creates a pending connection from actor to targetID.
func (s *ConnectionService) Request(ctx context.Context, actor authz.Identity, targetID string) (*model.Connection, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionConnectionRequest, nil); err != nil {
		return nil, err
	}
	if err := s.requireOther(ctx, actor, targetID); err != nil {
		return nil, err
	}
	existing, err := s.connections.FindPair(ctx, actor.ID, targetID)
	switch {
	case err == nil:
		if existing.Status == model.ConnectionBlocked {
			return nil, apperr.Forbidden(apperr.ReasonBlocked, "connection is blocked", nil, actor.ActualRole())
		}
		return nil, apperr.Conflict(apperr.ReasonDuplicateConnection, "connection already exists")
	case !store.IsNotFound(err):
		return nil, apperr.Internal(err)
	}

	c := &model.Connection{
		ID:          pkg.NewRowID(),
		RequesterID: actor.ID,
		TargetID:    targetID,
		Status:      model.ConnectionPending,
	}
	if err := s.connections.Create(ctx, c); err != nil {
		if store.IsDuplicate(err) {
			return nil, apperr.Conflict(apperr.ReasonDuplicateConnection, "connection already exists")
		}
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// Accept is performed by the target of a pending request from requesterID.
func (s *ConnectionService) Accept(ctx context.Context, actor authz.Identity, requesterID string) (*model.Connection, error) {
	c, err := s.connections.FindPair(ctx, actor.ID, requesterID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("no pending connection request")
		}
		return nil, apperr.Internal(err)
	}
	// only a request from requesterID to the actor counts
	if c.Status != model.ConnectionPending || c.RequesterID != requesterID {
		return nil, apperr.NotFound("no pending connection request")
	}
	if err := s.engine.Require(ctx, actor, authz.ActionConnectionAccept, authz.OwnedBy(c.TargetID)); err != nil {
		return nil, err
	}
	if err := s.connections.UpdateStatus(ctx, c.ID, model.ConnectionAccepted, nil); err != nil {
		return nil, apperr.Internal(err)
	}
	c.Status = model.ConnectionAccepted
	return c, nil
}

// Remove deletes the connection from either side. A block can only be lifted by whoever set it.
func (s *ConnectionService) Remove(ctx context.Context, actor authz.Identity, otherID string) error {
	c, err := s.connections.FindPair(ctx, actor.ID, otherID)
	if err != nil {
		if store.IsNotFound(err) {
			return apperr.NotFound("connection not found")
		}
		return apperr.Internal(err)
	}
	owners := authz.OwnedBy(c.RequesterID, c.TargetID)
	if c.Status == model.ConnectionBlocked && c.BlockedBy != nil {
		owners = authz.OwnedBy(*c.BlockedBy)
	}
	if err := s.engine.Require(ctx, actor, authz.ActionConnectionRemove, owners); err != nil {
		return err
	}
	if err := s.connections.Delete(ctx, c.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Block marks the pair blocked, creating the record when the two were never connected.
func (s *ConnectionService) Block(ctx context.Context, actor authz.Identity, otherID string) (*model.Connection, error) {
	if err := s.requireOther(ctx, actor, otherID); err != nil {
		return nil, err
	}
	c := &model.Connection{ID: pkg.NewRowID(), RequesterID: actor.ID, TargetID: otherID}
	c.PairLow, c.PairHigh = model.OrderedPair(actor.ID, otherID)
	if err := s.engine.Require(ctx, actor, authz.ActionConnectionBlock, authz.OwnedBy(actor.ID)); err != nil {
		return nil, err
	}
	if err := s.connections.Block(ctx, c, actor.ID); err != nil {
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// List returns the actor's connections, optionally filtered by status.
func (s *ConnectionService) List(ctx context.Context, actor authz.Identity, status model.ConnectionStatus) ([]ConnectionView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionConnectionList, nil); err != nil {
		return nil, err
	}
	conns, err := s.connections.ListFor(ctx, actor.ID, status)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	others := make([]*string, 0, len(conns))
	for i := range conns {
		others = append(others, otherSide(&conns[i], actor.ID))
	}
	found := lookupAccounts(ctx, s.accounts, others...)

	out := make([]ConnectionView, 0, len(conns))
	for i := range conns {
		c := &conns[i]
		dir := "outgoing"
		if c.TargetID == actor.ID {
			dir = "incoming"
		}
		out = append(out, ConnectionView{
			ID:        c.ID,
			Status:    c.Status,
			Direction: dir,
			Other:     refOf(found, others[i]),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return out, nil
}

func otherSide(c *model.Connection, self string) *string {
	if c.RequesterID == self {
		return &c.TargetID
	}
	return &c.RequesterID
}
