package model

import "time"

type Blog struct {
	ID          string    `gorm:"primaryKey;size:16" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	IsAvailable bool      `gorm:"not null;default:false;index" json:"is_available"`
	AuthorID    *string   `gorm:"size:16;index" json:"author_id"`
	Author      *Account  `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
