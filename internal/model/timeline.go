package model

import "time"

type TimelinePost struct {
	ID             string    `gorm:"primaryKey;size:16" json:"id"`
	Title          *string   `gorm:"size:200" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       *string   `gorm:"size:512" json:"image_url"`
	AttachmentURL  *string   `gorm:"size:512" json:"attachment_url"`
	AttachmentName *string   `gorm:"size:255" json:"attachment_name"`
	AuthorID       *string   `gorm:"size:16;index" json:"author_id"`
	Author         *Account  `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
