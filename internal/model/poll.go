package model

import "time"

type Poll struct {
	ID          string       `gorm:"primaryKey;size:16" json:"id"`
	Question    string       `gorm:"size:500;not null" json:"question"`
	Description *string      `gorm:"type:text" json:"description"`
	CreatorID   *string      `gorm:"size:16;index" json:"creator_id"`
	Creator     *Account     `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`
	ExpiresAt   *time.Time   `json:"expires_at"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	Options     []PollOption `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
}

// OpenAt reports whether the poll accepts votes at now.
func (p *Poll) OpenAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return p.ExpiresAt == nil || now.Before(*p.ExpiresAt)
}

type PollOption struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PollID     string    `gorm:"size:16;not null;index" json:"poll_id"`
	OptionText string    `gorm:"size:255;not null" json:"option_text"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

type PollVote struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	PollID    string     `gorm:"size:16;not null;uniqueIndex:uk_poll_account" json:"poll_id"`
	Poll      Poll       `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"-"`
	OptionID  string     `gorm:"size:36;not null;index" json:"option_id"`
	Option    PollOption `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"-"`
	AccountID string     `gorm:"size:16;not null;uniqueIndex:uk_poll_account" json:"account_id"`
	Account   Account    `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
