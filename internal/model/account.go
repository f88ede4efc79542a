package model

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RolePresident Role = "president"
	RoleSecretary Role = "secretary"
	RoleMember    Role = "member"
)

// AllRoles lists the closed role set in a stable order.
var AllRoles = []Role{RoleAdmin, RolePresident, RoleSecretary, RoleMember}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePresident, RoleSecretary, RoleMember:
		return true
	}
	return false
}

type Account struct {
	ID           string    `gorm:"primaryKey;size:16" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:member;index" json:"role"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sequence backs the human-readable ids of top-level entities (USR000001, EVT000042, ...).
type Sequence struct {
	Name  string `gorm:"primaryKey;size:8" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

// ID prefixes per entity type.
const (
	PrefixAccount  = "USR"
	PrefixProfile  = "PRF"
	PrefixEvent    = "EVT"
	PrefixBlog     = "BLG"
	PrefixTimeline = "TML"
	PrefixPoll     = "POL"
)
