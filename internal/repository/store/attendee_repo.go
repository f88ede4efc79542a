package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendeeRepository struct {
	DB *gorm.DB
}

func (r *AttendeeRepository) Find(ctx context.Context, eventID, accountID string) (*model.EventAttendee, error) {
	var a model.EventAttendee
	err := r.DB.WithContext(ctx).Where("event_id = ? AND account_id = ?", eventID, accountID).First(&a).Error
	return &a, err
}

// Upsert writes the row for (event, account), overwriting status and check-in columns on conflict.
func (r *AttendeeRepository) Upsert(ctx context.Context, a *model.EventAttendee) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "checked_in_at", "checked_in_by", "updated_at"}),
	}).Create(a).Error
}

func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	var out []model.EventAttendee
	err := r.DB.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at ASC").Find(&out).Error
	return out, err
}
