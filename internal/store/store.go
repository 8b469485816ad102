// Package store holds the data-access interfaces used by the services and
// their two implementations: Gorm (PostgreSQL) and Memory.
package store

import (
	"context"
	"errors"

	"mudawwana/internal/models"
)

// ErrNotFound is returned when a keyed lookup matches nothing.
var ErrNotFound = errors.New("record not found")

type CommentStore interface {
	// Find returns every comment of the article, oldest first.
	Find(ctx context.Context, articleID uint) ([]models.Comment, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	DeleteByID(ctx context.Context, id uint) error
	DeleteWhereParent(ctx context.Context, parentID uint) (int64, error)
	DeleteByArticle(ctx context.Context, articleID uint) error
	AddLike(ctx context.Context, commentID uint, email string) error
	RemoveLike(ctx context.Context, commentID uint, email string) error
}

type FollowStore interface {
	FindFollowers(ctx context.Context, userID string) ([]string, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type NotificationStore interface {
	CreateMany(ctx context.Context, notifications []models.Notification) error
	ListFor(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	UpdateManyRead(ctx context.Context, recipientID string) (int64, error)
	DeleteAllFor(ctx context.Context, recipientID string) (int64, error)
}

type ArticleStore interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	// List returns one page of articles, newest first, and the total count.
	List(ctx context.Context, page, perPage int, category string) ([]models.Article, int64, error)
	Related(ctx context.Context, article *models.Article, limit int) ([]models.Article, error)
	Delete(ctx context.Context, id uint) error
	GetReaction(ctx context.Context, articleID uint, userID string) (int, error)
	// SetReaction stores value for the user; 0 removes the reaction.
	SetReaction(ctx context.Context, articleID uint, userID string, value int) error
	ReactionCounts(ctx context.Context, articleID uint) (models.ReactionCounts, error)
}

type UserStore interface {
	// Upsert refreshes identity fields and keeps role and moderation flags.
	Upsert(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// Stores bundles every store a server needs.
type Stores struct {
	Comments      CommentStore
	Follows       FollowStore
	Notifications NotificationStore
	Articles      ArticleStore
	Users         UserStore
}
