package store

import (
	"context"

	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollRepository struct {
	DB *gorm.DB
}

// OptionCount is the live tally of one option.
type OptionCount struct {
	PollID   string
	OptionID string
	Votes    int64
}

// Create inserts the poll header and its options, in the given order, in one transaction.
func (r *PollRepository) Create(ctx context.Context, p *model.Poll, options []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixPoll)
		if err != nil {
			return err
		}
		p.ID = id
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		p.Options = make([]model.PollOption, 0, len(options))
		for i, text := range options {
			p.Options = append(p.Options, model.PollOption{
				ID:         pkg.NewRowID(),
				PollID:     p.ID,
				OptionText: text,
				Position:   i,
			})
		}
		return tx.Create(&p.Options).Error
	})
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

func (r *PollRepository) FindByID(ctx context.Context, id string) (*model.Poll, error) {
	var p model.Poll
	err := r.DB.WithContext(ctx).Preload("Options", orderedOptions).Where("id = ?", id).First(&p).Error
	return &p, err
}

// List returns polls newest first with their options.
func (r *PollRepository) List(ctx context.Context, offset, limit int) ([]model.Poll, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Poll{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.Poll
	err := r.DB.WithContext(ctx).Preload("Options", orderedOptions).
		Order("created_at DESC").Order("id DESC").
		Scopes(Paginate(offset, limit)).Find(&out).Error
	return out, total, err
}

func (r *PollRepository) OptionBelongs(ctx context.Context, pollID, optionID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PollOption{}).
		Where("id = ? AND poll_id = ?", optionID, pollID).Count(&n).Error
	return n > 0, err
}

// Vote is a single insert-or-update keyed on (poll_id, account_id).
func (r *PollRepository) Vote(ctx context.Context, v *model.PollVote) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "poll_id"}, {Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_id", "updated_at"}),
	}).Create(v).Error
}

// Counts tallies votes per option for the given polls.
func (r *PollRepository) Counts(ctx context.Context, pollIDs ...string) ([]OptionCount, error) {
	var out []OptionCount
	if len(pollIDs) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.PollVote{}).
		Select("poll_id, option_id, COUNT(*) AS votes").
		Where("poll_id IN ?", pollIDs).
		Group("poll_id, option_id").
		Scan(&out).Error
	return out, err
}

func (r *PollRepository) FindVote(ctx context.Context, pollID, accountID string) (*model.PollVote, error) {
	var v model.PollVote
	err := r.DB.WithContext(ctx).Where("poll_id = ? AND account_id = ?", pollID, accountID).First(&v).Error
	return &v, err
}

func (r *PollRepository) CountVotesBy(ctx context.Context, pollID, accountID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.PollVote{}).
		Where("poll_id = ? AND account_id = ?", pollID, accountID).Count(&n).Error
	return n, err
}

func (r *PollRepository) Close(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.Poll{}).Where("id = ?", id).Update("is_active", false).Error
}

// Delete removes the poll with its votes and options.
func (r *PollRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Poll{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}
