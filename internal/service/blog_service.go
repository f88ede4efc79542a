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

type BlogInput struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
}

type BlogView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	IsAvailable bool        `json:"is_available"`
	AuthorID    *string     `json:"author_id"`
	Author      *AccountRef `json:"author"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type BlogService struct {
	accounts *store.AccountRepository
	blogs    *store.BlogRepository
	engine   *authz.Engine
	audit    *Auditor
}

func NewBlogService(accounts *store.AccountRepository, blogs *store.BlogRepository, engine *authz.Engine, audit *Auditor) *BlogService {
	return &BlogService{accounts: accounts, blogs: blogs, engine: engine, audit: audit}
}

// List shows unapproved blogs only to viewers allowed to see them.
func (s *BlogService) List(ctx context.Context, viewer authz.Identity, p Page) (PageResult[BlogView], error) {
	approvedOnly := !s.engine.Allowed(ctx, viewer, authz.ActionBlogViewUnapproved, nil)
	blogs, total, err := s.blogs.List(ctx, approvedOnly, p.Offset(), p.Limit)
	if err != nil {
		return PageResult[BlogView]{}, apperr.Internal(err)
	}
	return newPageResult(s.views(ctx, blogs), p, total), nil
}

// Get hides an unapproved blog from everyone but admins and its author.
func (s *BlogService) Get(ctx context.Context, viewer authz.Identity, id string) (*BlogView, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsAvailable && !s.engine.Allowed(ctx, viewer, authz.ActionBlogViewUnapproved, authorOf(b.AuthorID)) {
		return nil, apperr.NotFound("blog not found")
	}
	v := s.views(ctx, []model.Blog{*b})[0]
	return &v, nil
}

func (s *BlogService) find(ctx context.Context, id string) (*model.Blog, error) {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, apperr.NotFound("blog not found")
		}
		return nil, apperr.Internal(err)
	}
	return b, nil
}

// Create publishes immediately for admins; anything else waits for approval.
func (s *BlogService) Create(ctx context.Context, actor authz.Identity, in BlogInput) (*BlogView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionBlogCreate, nil); err != nil {
		return nil, err
	}
	var missing []apperr.FieldError
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		missing = append(missing, requiredField("title"))
	}
	if in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		missing = append(missing, requiredField("content"))
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("invalid input", missing...)
	}
	author := actor.ID
	b := &model.Blog{
		Title:       strings.TrimSpace(*in.Title),
		Content:     *in.Content,
		IsAvailable: actor.Role == model.RoleAdmin,
		AuthorID:    &author,
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, apperr.Internal(err)
	}
	v := s.views(ctx, []model.Blog{*b})[0]
	return &v, nil
}

func (s *BlogService) Update(ctx context.Context, actor authz.Identity, id string, in BlogInput) (*BlogView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionBlogUpdate, nil); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	var bad []apperr.FieldError
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			bad = append(bad, requiredField("title"))
		}
		changes["title"] = title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			bad = append(bad, requiredField("content"))
		}
		changes["content"] = *in.Content
	}
	if len(changes) == 0 {
		return nil, apperr.NoChanges()
	}
	if len(bad) > 0 {
		return nil, apperr.Validation("invalid input", bad...)
	}
	if err := s.blogs.Update(ctx, id, changes); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.reload(ctx, id)
}

func (s *BlogService) Delete(ctx context.Context, actor authz.Identity, id string) error {
	if err := s.engine.Require(ctx, actor, authz.ActionBlogDelete, nil); err != nil {
		return err
	}
	ok, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("blog not found")
	}
	return nil
}

func (s *BlogService) Approve(ctx context.Context, actor authz.Identity, id string) (*BlogView, error) {
	if err := s.engine.Require(ctx, actor, authz.ActionBlogApprove, nil); err != nil {
		return nil, err
	}
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsAvailable {
		if err := s.blogs.Update(ctx, id, map[string]any{"is_available": true}); err != nil {
			return nil, apperr.Internal(err)
		}
		s.audit.Record(ctx, AuditBlogApproved, actor.ID, id, nil)
	}
	return s.reload(ctx, id)
}

func (s *BlogService) reload(ctx context.Context, id string) (*BlogView, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.views(ctx, []model.Blog{*b})[0]
	return &v, nil
}

func (s *BlogService) views(ctx context.Context, blogs []model.Blog) []BlogView {
	ids := make([]*string, 0, len(blogs))
	for i := range blogs {
		ids = append(ids, blogs[i].AuthorID)
	}
	found := lookupAccounts(ctx, s.accounts, ids...)
	out := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, BlogView{
			ID:          b.ID,
			Title:       b.Title,
			Content:     b.Content,
			IsAvailable: b.IsAvailable,
			AuthorID:    b.AuthorID,
			Author:      refOf(found, b.AuthorID),
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		})
	}
	return out
}

func authorOf(id *string) *authz.Resource {
	if id == nil {
		return nil
	}
	return authz.OwnedBy(*id)
}
