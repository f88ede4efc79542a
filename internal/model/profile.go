package model

import "time"

type Profile struct {
	ID          string     `gorm:"primaryKey;size:16" json:"id"`
	AccountID   string     `gorm:"uniqueIndex;size:16;not null" json:"account_id"`
	Account     Account    `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	FirstName   string     `gorm:"size:64" json:"first_name"`
	LastName    string     `gorm:"size:64" json:"last_name"`
	Bio         string     `gorm:"type:text" json:"bio"`
	AvatarURL   string     `gorm:"size:512" json:"avatar_url"`
	PhoneNumber string     `gorm:"size:32" json:"phone_number"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Socials struct {
	AccountID string    `gorm:"primaryKey;size:16" json:"account_id"`
	Account   Account   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Website   string    `gorm:"size:255" json:"website"`
	Twitter   string    `gorm:"size:255" json:"twitter"`
	Instagram string    `gorm:"size:255" json:"instagram"`
	LinkedIn  string    `gorm:"size:255" json:"linked_in"`
	Github    string    `gorm:"size:255" json:"github"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets table name for Socials
func (Socials) TableName() string {
	return "socials"
}

type Address struct {
	AccountID  string    `gorm:"primaryKey;size:16" json:"account_id"`
	Account    Account   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Street     string    `gorm:"size:255" json:"street"`
	City       string    `gorm:"size:128" json:"city"`
	State      string    `gorm:"size:128" json:"state"`
	PostalCode string    `gorm:"size:32" json:"postal_code"`
	Country    string    `gorm:"size:128" json:"country"`
	UpdatedAt  time.Time `json:"updated_at"`
}
