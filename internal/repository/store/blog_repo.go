package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepository struct {
	DB *gorm.DB
}

func (r *BlogRepository) Create(ctx context.Context, b *model.Blog) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixBlog)
		if err != nil {
			return err
		}
		b.ID = id
		return tx.Omit(clause.Associations).Create(b).Error
	})
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	var b model.Blog
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error
	return &b, err
}

// List returns newest first; approvedOnly hides unapproved blogs.
func (r *BlogRepository) List(ctx context.Context, approvedOnly bool, offset, limit int) ([]model.Blog, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Blog{})
	if approvedOnly {
		q = q.Where("is_available = ?", true)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.Blog
	err := q.Order("created_at DESC").Order("id DESC").Scopes(Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

func (r *BlogRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Blog{}).Where("id = ?", id).Updates(changes).Error
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Blog{})
	return res.RowsAffected > 0, res.Error
}
