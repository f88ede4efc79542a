package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"
)

const (
	MinPollOptions    = 2
	MaxPollOptions    = 20
	maxQuestionLen    = 500
	maxDescriptionLen = 2000
	maxOptionLen      = 255
)

// PollInput is validated in one pass by Create so every failing field is reported together.
type PollInput struct {
	Question    string     `json:"question"`
	Description *string    `json:"description"`
	Options     []string   `json:"options"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type PollView struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	Description *string    `json:"description"`
	CreatorID   *string    `json:"creator_id"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsActive    bool       `json:"is_active"`
	IsOpen      bool       `json:"is_open"`
	CreatedAt   time.Time  `json:"created_at"`
	Results
	MyVote *string `json:"my_vote,omitempty"`
}

type PollService struct {
	polls  *store.PollRepository
	engine *authz.Engine
	now    func() time.Time
}

func NewPollService(polls *store.PollRepository, engine *authz.Engine, now func() time.Time) *PollService {
	return &PollService{polls: polls, engine: engine, now: now}
}

// Create stores the poll and its options atomically, options in the given order.
func (s *PollService) Create(ctx context.Context, actor authz.Identity, in PollInput) (*PollView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionPollCreate, nil); err != nil {
		return nil, err
	}
	question := strings.TrimSpace(in.Question)
	var bad []apperr.FieldError
	switch {
	case question == "":
		bad = append(bad, requiredField("question"))
	case utf8.RuneCountInString(question) > maxQuestionLen:
		bad = append(bad, tooLong("question", maxQuestionLen))
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > maxDescriptionLen {
		bad = append(bad, tooLong("description", maxDescriptionLen))
	}
	options := make([]string, 0, len(in.Options))
	for i, o := range in.Options {
		o = strings.TrimSpace(o)
		field := fmt.Sprintf("options[%d]", i)
		switch {
		case o == "":
			bad = append(bad, apperr.FieldError{Field: field, Rule: "required", Message: "option text must not be blank"})
			continue
		case utf8.RuneCountInString(o) > maxOptionLen:
			bad = append(bad, tooLong(field, maxOptionLen))
			continue
		}
		options = append(options, o)
	}
	if len(in.Options) < MinPollOptions || len(in.Options) > MaxPollOptions {
		bad = append(bad, apperr.FieldError{
			Field: "options", Rule: "len", Message: fmt.Sprintf("a poll needs between %d and %d options", MinPollOptions, MaxPollOptions),
		})
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		bad = append(bad, apperr.FieldError{Field: "expires_at", Rule: "future", Message: "expires_at must be in the future"})
	}
	if len(bad) > 0 {
		return nil, apperr.Validation("invalid input", bad...)
	}

	creator := actor.ID
	p := &model.Poll{
		Question:    question,
		Description: in.Description,
		CreatorID:   &creator,
		ExpiresAt:   in.ExpiresAt,
		IsActive:    true,
	}
	if err := s.polls.Create(ctx, p, options); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, actor, p.ID)
}

// Vote records or replaces the actor's single vote on an open poll.
func (s *PollService) Vote(ctx context.Context, actor authz.Identity, pollID, optionID string) (*PollView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionPollVote, nil); err != nil {
		return nil, err
	}
	p, err := s.find(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !p.OpenAt(s.now()) {
		return nil, apperr.Forbidden(apperr.ReasonPollClosed, "poll is closed", nil, actor.ActualRole())
	}
	ok, err := s.polls.OptionBelongs(ctx, pollID, optionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.Invalid(apperr.ReasonInvalidOption, "invalid option", apperr.FieldError{
			Field: "option_id", Rule: "belongs_to_poll", Message: "option does not belong to this poll",
		})
	}
	v := &model.PollVote{
		ID:        pkg.NewRowID(),
		PollID:    pollID,
		OptionID:  optionID,
		AccountID: actor.ID,
	}
	if err := s.polls.Vote(ctx, v); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Get(ctx, actor, pollID)
}

func (s *PollService) find(ctx context.Context, id string) (*model.Poll, error) {
	p, err := s.polls.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("poll not found")
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

// Get returns the poll with live results and, for a signed-in viewer, their vote.
func (s *PollService) Get(ctx context.Context, viewer authz.Identity, id string) (*PollView, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []model.Poll{*p})
	if err != nil {
		return nil, err
	}
	v := views[0]
	if !viewer.IsAnonymous() {
		vote, err := s.polls.FindVote(ctx, id, viewer.ID)
		switch {
		case err == nil:
			v.MyVote = &vote.OptionID
		case !store.IsNotFound(err):
			return nil, apperr.Internal(err)
		}
	}
	return &v, nil
}

func (s *PollService) List(ctx context.Context, p Page) (PageResult[PollView], error) {
	polls, total, err := s.polls.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return PageResult[PollView]{}, apperr.Internal(err)
	}
	views, err := s.views(ctx, polls)
	if err != nil {
		return PageResult[PollView]{}, err
	}
	return newPageResult(views, p, total), nil
}

func (s *PollService) Close(ctx context.Context, actor authz.Identity, id string) (*PollView, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Require(ctx, actor, authz.ActionPollClose, creatorOf(p)); err != nil {
		return nil, err
	}
	if p.IsActive {
		if err := s.polls.Close(ctx, id); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return s.Get(ctx, actor, id)
}

func (s *PollService) Delete(ctx context.Context, actor authz.Identity, id string) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.engine.Require(ctx, actor, authz.ActionPollDelete, creatorOf(p)); err != nil {
		return err
	}
	if _, err := s.polls.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *PollService) views(ctx context.Context, polls []model.Poll) ([]PollView, error) {
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}
	counts, err := s.polls.Counts(ctx, ids...)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byPoll := make(map[string]map[string]int64, len(polls))
	for _, c := range counts {
		if byPoll[c.PollID] == nil {
			byPoll[c.PollID] = map[string]int64{}
		}
		byPoll[c.PollID][c.OptionID] = c.Votes
	}

	now := s.now()
	out := make([]PollView, 0, len(polls))
	for i := range polls {
		p := &polls[i]
		out = append(out, PollView{
			ID:          p.ID,
			Question:    p.Question,
			Description: p.Description,
			CreatorID:   p.CreatorID,
			ExpiresAt:   p.ExpiresAt,
			IsActive:    p.IsActive,
			IsOpen:      p.OpenAt(now),
			CreatedAt:   p.CreatedAt,
			Results:     Tally(p.Options, byPoll[p.ID]),
		})
	}
	return out, nil
}

func creatorOf(p *model.Poll) *authz.Resource {
	if p.CreatorID == nil {
		return nil
	}
	return authz.OwnedBy(*p.CreatorID)
}

func tooLong(field string, limit int) apperr.FieldError {
	return apperr.FieldError{Field: field, Rule: "max", Message: fmt.Sprintf("%s must be at most %d characters", field, limit)}
}
