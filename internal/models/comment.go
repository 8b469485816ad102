package models

import (
	"time"
)

// Comment keeps a snapshot of its author as they were when posting.
type Comment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ArticleID      uint      `gorm:"not null;index" json:"article_id"`
	Article        Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID       *uint     `gorm:"index" json:"parent_id"` // nil for top-level comments
	Content        string    `gorm:"type:text;not null" json:"content"`
	AuthorID       string    `gorm:"not null;index;size:128" json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorEmail    string    `json:"author_email"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Likes          []string  `gorm:"-" json:"likes"` // liker emails, loaded from comment_likes
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

func (c *Comment) LikedBy(email string) bool {
	for _, e := range c.Likes {
		if e == email {
			return true
		}
	}
	return false
}

type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_email" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Email     string    `gorm:"not null;uniqueIndex:idx_comment_email" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
