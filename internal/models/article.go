package models

import (
	"time"
)

type Article struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Slug           string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	AuthorID       string    `gorm:"not null;index;size:128" json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Title          string    `gorm:"not null" json:"title"`
	Content        string    `gorm:"type:text" json:"content"` // markdown
	Category       string    `gorm:"size:100;index" json:"category"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// not stored, filled on the detail view
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
}
