package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimelineRepository struct {
	DB *gorm.DB
}

func (r *TimelineRepository) Create(ctx context.Context, p *model.TimelinePost) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixTimeline)
		if err != nil {
			return err
		}
		p.ID = id
		return tx.Omit(clause.Associations).Create(p).Error
	})
}

func (r *TimelineRepository) FindByID(ctx context.Context, id string) (*model.TimelinePost, error) {
	var p model.TimelinePost
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *TimelineRepository) List(ctx context.Context, offset, limit int) ([]model.TimelinePost, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.TimelinePost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.TimelinePost
	err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").
		Scopes(Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

func (r *TimelineRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.TimelinePost{}).Where("id = ?", id).Updates(changes).Error
}

func (r *TimelineRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.TimelinePost{})
	return res.RowsAffected > 0, res.Error
}
