package models

import (
	"time"
)

type NotificationKind string

const (
	NotificationNewBlog NotificationKind = "new_blog"
	NotificationLike    NotificationKind = "like"
	NotificationFollow  NotificationKind = "follow"
)

type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID string           `gorm:"not null;index;size:128" json:"recipient_id"`
	SenderID    string           `gorm:"not null;size:128" json:"sender_id"`
	Sender      *User            `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender,omitempty"`
	Kind        NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	ArticleID   *uint            `gorm:"index" json:"article_id"`
	IsRead      bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
