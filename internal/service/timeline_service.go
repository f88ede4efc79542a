package service

import (
	"context"
	"strings"
	"time"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"
)

type TimelineInput struct {
	Title          *string `json:"title" binding:"omitempty,max=200"`
	Content        *string `json:"content"`
	ImageURL       *string `json:"image_url" binding:"omitempty,max=512"`
	AttachmentURL  *string `json:"attachment_url" binding:"omitempty,max=512"`
	AttachmentName *string `json:"attachment_name" binding:"omitempty,max=255"`
}

type TimelineView struct {
	ID             string      `json:"id"`
	Title          *string     `json:"title"`
	Content        string      `json:"content"`
	ImageURL       *string     `json:"image_url"`
	AttachmentURL  *string     `json:"attachment_url"`
	AttachmentName *string     `json:"attachment_name"`
	AuthorID       *string     `json:"author_id"`
	Author         *AccountRef `json:"author"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type TimelineService struct {
	accounts *store.AccountRepository
	posts    *store.TimelineRepository
	engine   *authz.Engine
}

func NewTimelineService(accounts *store.AccountRepository, posts *store.TimelineRepository, engine *authz.Engine) *TimelineService {
	return &TimelineService{accounts: accounts, posts: posts, engine: engine}
}

func (s *TimelineService) List(ctx context.Context, viewer authz.Identity, p Page) (PageResult[TimelineView], error) {
	if err := s.engine.Require(ctx, viewer, authz.ActionTimelineRead, nil); err != nil {
		return PageResult[TimelineView]{}, err
	}
	posts, total, err := s.posts.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return PageResult[TimelineView]{}, apperr.Internal(err)
	}
	return newPageResult(s.views(ctx, posts), p, total), nil
}

func (s *TimelineService) Get(ctx context.Context, viewer authz.Identity, id string) (*TimelineView, error) {
	if err := s.engine.Require(ctx, viewer, authz.ActionTimelineRead, nil); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *TimelineService) get(ctx context.Context, id string) (*TimelineView, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("timeline post not found")
		}
		return nil, apperr.Internal(err)
	}
	v := s.views(ctx, []model.TimelinePost{*p})[0]
	return &v, nil
}

func (s *TimelineService) Create(ctx context.Context, actor authz.Identity, in TimelineInput) (*TimelineView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionTimelineCreate, nil); err != nil {
		return nil, err
	}
	if in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		return nil, apperr.Validation("invalid input", requiredField("content"))
	}
	author := actor.ID
	p := &model.TimelinePost{
		Title:          in.Title,
		Content:        *in.Content,
		ImageURL:       in.ImageURL,
		AttachmentURL:  in.AttachmentURL,
		AttachmentName: in.AttachmentName,
		AuthorID:       &author,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.get(ctx, p.ID)
}

func (s *TimelineService) Update(ctx context.Context, actor authz.Identity, id string, in TimelineInput) (*TimelineView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionTimelineUpdate, nil); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Content != nil {
		changes["content"] = *in.Content
	}
	if in.ImageURL != nil {
		changes["image_url"] = *in.ImageURL
	}
	if in.AttachmentURL != nil {
		changes["attachment_url"] = *in.AttachmentURL
	}
	if in.AttachmentName != nil {
		changes["attachment_name"] = *in.AttachmentName
	}
	if len(changes) == 0 {
		return nil, apperr.NoChanges()
	}
	if c, ok := changes["content"].(string); ok && strings.TrimSpace(c) == "" {
		return nil, apperr.Validation("invalid input", requiredField("content"))
	}
	if err := s.posts.Update(ctx, id, changes); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.get(ctx, id)
}

func (s *TimelineService) Delete(ctx context.Context, actor authz.Identity, id string) error {
	if err := s.engine.Require(ctx, actor, authz.ActionTimelineDelete, nil); err != nil {
		return err
	}
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("timeline post not found")
	}
	return nil
}

func (s *TimelineService) views(ctx context.Context, posts []model.TimelinePost) []TimelineView {
	ids := make([]*string, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].AuthorID)
	}
	found := lookupAccounts(ctx, s.accounts, ids...)
	out := make([]TimelineView, 0, len(posts))
	for _, p := range posts {
		out = append(out, TimelineView{
			ID:             p.ID,
			Title:          p.Title,
			Content:        p.Content,
			ImageURL:       p.ImageURL,
			AttachmentURL:  p.AttachmentURL,
			AttachmentName: p.AttachmentName,
			AuthorID:       p.AuthorID,
			Author:         refOf(found, p.AuthorID),
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
	}
	return out
}
