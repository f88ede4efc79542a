package store

import (
	"context"
	"strings"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

// Create allocates a USR id and inserts acct in one transaction.
func (r *AccountRepository) Create(ctx context.Context, acct *model.Account) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, model.PrefixAccount)
		if err != nil {
			return err
		}
		acct.ID = id
		return tx.Create(acct).Error
	})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	var acct model.Account
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&acct).Error
	return &acct, err
}

// FindByLogin matches either email or username. Emails are stored lowercased,
// so the email side compares case-insensitively.
func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (*model.Account, error) {
	var acct model.Account
	err := r.DB.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(login), login).
		First(&acct).Error
	return &acct, err
}

// FindByIdentifier matches id, username or email.
func (r *AccountRepository) FindByIdentifier(ctx context.Context, ident string) (*model.Account, error) {
	var acct model.Account
	err := r.DB.WithContext(ctx).
		Where("id = ? OR username = ? OR email = ?", ident, ident, strings.ToLower(ident)).
		First(&acct).Error
	return &acct, err
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var acct model.Account
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&acct).Error
	return &acct, err
}

// FindByIDs loads the accounts for ids keyed by id; missing ids are absent from the map.
func (r *AccountRepository) FindByIDs(ctx context.Context, ids []string) (map[string]model.Account, error) {
	out := make(map[string]model.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var accts []model.Account
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&accts).Error; err != nil {
		return nil, err
	}
	for _, a := range accts {
		out[a.ID] = a
	}
	return out, nil
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Account{}).Where("email = ?", strings.ToLower(email)).Count(&n).Error
	return n > 0, err
}

func (r *AccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Account{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *AccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// List returns one page of accounts, optionally filtered by role, plus the filtered total.
func (r *AccountRepository) List(ctx context.Context, role model.Role, offset, limit int) ([]model.Account, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Account{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var accts []model.Account
	err := q.Order("id ASC").Scopes(Paginate(offset, limit)).Find(&accts).Error
	return accts, total, err
}

func (r *AccountRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Account{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
	return r.DB.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("role", role).Error
}

func (r *AccountRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.DB.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("is_active", active).Error
}

// Delete removes the account; owned rows cascade and authored content keeps a null reference.
func (r *AccountRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Account{})
	return res.RowsAffected > 0, res.Error
}
