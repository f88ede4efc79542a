package store

import (
	"context"

	"Club_Portal/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	DB *gorm.DB
}

// PermissionsFor lists the permission strings granted to role, sorted.
func (r *PermissionRepository) PermissionsFor(ctx context.Context, role model.Role) ([]string, error) {
	var perms []string
	err := r.DB.WithContext(ctx).Model(&model.RolePermission{}).
		Where("role = ?", role).Order("permission ASC").Pluck("permission", &perms).Error
	return perms, err
}

// All groups every stored permission by role.
func (r *PermissionRepository) All(ctx context.Context) (map[model.Role][]string, error) {
	var rows []model.RolePermission
	if err := r.DB.WithContext(ctx).Order("role ASC").Order("permission ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[model.Role][]string)
	for _, row := range rows {
		out[row.Role] = append(out[row.Role], row.Permission)
	}
	return out, nil
}

// Replace swaps role's permission set in one transaction.
func (r *PermissionRepository) Replace(ctx context.Context, role model.Role, perms []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ?", role).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		rows := make([]model.RolePermission, 0, len(perms))
		for _, p := range perms {
			rows = append(rows, model.RolePermission{Role: role, Permission: p})
		}
		return tx.Create(&rows).Error
	})
}
