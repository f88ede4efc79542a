package store

import (
	"context"
	"errors"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

// ProfileBundle is a profile with its socials and address rows.
type ProfileBundle struct {
	Profile model.Profile
	Socials model.Socials
	Address model.Address
}

// ProfileChanges holds per-table column updates; empty maps are skipped.
type ProfileChanges struct {
	Profile map[string]any
	Socials map[string]any
	Address map[string]any
}

func (c ProfileChanges) Empty() bool {
	return len(c.Profile) == 0 && len(c.Socials) == 0 && len(c.Address) == 0
}

func (r *ProfileRepository) ExistsForAccount(ctx context.Context, accountID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Profile{}).Where("account_id = ?", accountID).Count(&n).Error
	return n > 0, err
}

// FindByAccount loads the bundle; socials and address fall back to empty rows.
func (r *ProfileRepository) FindByAccount(ctx context.Context, accountID string) (*ProfileBundle, error) {
	var b ProfileBundle
	db := r.DB.WithContext(ctx)
	if err := db.Where("account_id = ?", accountID).First(&b.Profile).Error; err != nil {
		return nil, err
	}
	if err := db.Where("account_id = ?", accountID).First(&b.Socials).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.Where("account_id = ?", accountID).First(&b.Address).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b.Socials.AccountID, b.Address.AccountID = accountID, accountID
	return &b, nil
}

// Create inserts profile, socials and address in one transaction.
func (r *ProfileRepository) Create(ctx context.Context, b *ProfileBundle) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixProfile)
		if err != nil {
			return err
		}
		b.Profile.ID = id
		if err := tx.Omit("Account").Create(&b.Profile).Error; err != nil {
			return err
		}
		b.Socials.AccountID = b.Profile.AccountID
		if err := tx.Omit("Account").Create(&b.Socials).Error; err != nil {
			return err
		}
		b.Address.AccountID = b.Profile.AccountID
		return tx.Omit("Account").Create(&b.Address).Error
	})
}

// Update applies the changes in one transaction. It reports gorm.ErrRecordNotFound
// when the account has no profile.
func (r *ProfileRepository) Update(ctx context.Context, accountID string, c ProfileChanges) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Profile
		if err := tx.Where("account_id = ?", accountID).First(&p).Error; err != nil {
			return err
		}
		if len(c.Profile) > 0 {
			if err := tx.Model(&p).Updates(c.Profile).Error; err != nil {
				return err
			}
		}
		if len(c.Socials) > 0 {
			s := model.Socials{AccountID: accountID}
			if err := tx.Omit("Account").FirstOrCreate(&s, "account_id = ?", accountID).Error; err != nil {
				return err
			}
			if err := tx.Model(&s).Updates(c.Socials).Error; err != nil {
				return err
			}
		}
		if len(c.Address) > 0 {
			a := model.Address{AccountID: accountID}
			if err := tx.Omit("Account").FirstOrCreate(&a, "account_id = ?", accountID).Error; err != nil {
				return err
			}
			if err := tx.Model(&a).Updates(c.Address).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
