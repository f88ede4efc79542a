package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixEvent)
		if err != nil {
			return err
		}
		e.ID = id
		return tx.Omit(clause.Associations).Create(e).Error
	})
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&e).Error
	return &e, err
}

func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// List orders events by date, soonest first.
func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]model.Event, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.Event
	err := r.DB.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).
		Order("id ASC").
		Scopes(Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

func (r *EventRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(changes).Error
}

func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Event{})
	return res.RowsAffected > 0, res.Error
}
