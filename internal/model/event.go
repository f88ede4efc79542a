package model

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	ID          string         `gorm:"primaryKey;size:16" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Address     string         `gorm:"size:255" json:"address"`
	Time        string         `gorm:"size:5" json:"time"` // HH:MM
	Date        datatypes.Date `gorm:"index" json:"date"`
	Description string         `gorm:"type:text" json:"description"`
	HostID      *string        `gorm:"size:16;index" json:"host_id"`
	Host        *Account       `gorm:"foreignKey:HostID;constraint:OnDelete:SET NULL" json:"-"`
	HostName    *string        `gorm:"size:128" json:"host_name"`
	CreatedBy   *string        `gorm:"size:16" json:"created_by"`
	Creator     *Account       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type AttendeeStatus string

const (
	AttendeeRegistered AttendeeStatus = "registered"
	AttendeeCheckedIn  AttendeeStatus = "checked_in"
	AttendeeCancelled  AttendeeStatus = "cancelled"
)

type EventAttendee struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	EventID     string         `gorm:"size:16;not null;uniqueIndex:uk_event_account" json:"event_id"`
	Event       Event          `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	AccountID   string         `gorm:"size:16;not null;uniqueIndex:uk_event_account;index" json:"account_id"`
	Account     Account        `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Status      AttendeeStatus `gorm:"size:16;not null;default:registered" json:"status"`
	CheckedInAt *time.Time     `json:"checked_in_at"`
	CheckedInBy *string        `gorm:"size:16" json:"checked_in_by"`
	CheckedBy   *Account       `gorm:"foreignKey:CheckedInBy;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
