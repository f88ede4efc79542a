package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
)

type ConnectionRepository struct {
	DB *gorm.DB
}

// FindPair returns the single record for the unordered pair (a, b).
func (r *ConnectionRepository) FindPair(ctx context.Context, a, b string) (*model.Connection, error) {
	low, high := model.OrderedPair(a, b)
	var c model.Connection
	err := r.DB.WithContext(ctx).Where("pair_low = ? AND pair_high = ?", low, high).First(&c).Error
	return &c, err
}

// Create inserts a pending request; a concurrent duplicate fails on the pair index.
func (r *ConnectionRepository) Create(ctx context.Context, c *model.Connection) error {
	c.PairLow, c.PairHigh = model.OrderedPair(c.RequesterID, c.TargetID)
	return r.DB.WithContext(ctx).Omit("Requester", "Target").Create(c).Error
}

func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id string, status model.ConnectionStatus, blockedBy *string) error {
	return r.DB.WithContext(ctx).Model(&model.Connection{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "blocked_by": blockedBy}).Error
}

// Block records a block by actor on the pair, creating the record when absent.
func (r *ConnectionRepository) Block(ctx context.Context, c *model.Connection, actor string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Connection
		err := tx.Where("pair_low = ? AND pair_high = ?", c.PairLow, c.PairHigh).First(&existing).Error
		if IsNotFound(err) {
			c.Status = model.ConnectionBlocked
			c.BlockedBy = &actor
			return tx.Omit("Requester", "Target").Create(c).Error
		}
		if err != nil {
			return err
		}
		*c = existing
		c.Status = model.ConnectionBlocked
		c.BlockedBy = &actor
		return tx.Model(&model.Connection{}).Where("id = ?", existing.ID).
			Updates(map[string]any{"status": model.ConnectionBlocked, "blocked_by": actor}).Error
	})
}

func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Connection{}).Error
}

// ListFor returns every connection the account is a side of, newest first.
func (r *ConnectionRepository) ListFor(ctx context.Context, accountID string, status model.ConnectionStatus) ([]model.Connection, error) {
	q := r.DB.WithContext(ctx).Where("requester_id = ? OR target_id = ?", accountID, accountID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []model.Connection
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
