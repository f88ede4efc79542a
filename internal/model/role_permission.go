package model

// RolePermission grants a named capability to every account holding Role.
type RolePermission struct {
	Role       Role   `gorm:"primaryKey;size:16" json:"role"`
	Permission string `gorm:"primaryKey;size:64" json:"permission"`
}
