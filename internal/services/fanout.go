package services

import (
	"context"
	"fmt"
	"sync"

	"mudawwana/internal/models"
	"mudawwana/internal/store"

	"github.com/rs/zerolog"
)

// Notifier creates notifications off the request path. Work it starts is
// detached from the caller: it is never awaited by a handler, its errors end
// in the log and nothing is retried.
type Notifier struct {
	follows       store.FollowStore
	notifications store.NotificationStore
	log           zerolog.Logger
	wg            sync.WaitGroup
}

func NewNotifier(follows store.FollowStore, notifications store.NotificationStore, log zerolog.Logger) *Notifier {
	return &Notifier{
		follows:       follows,
		notifications: notifications,
		log:           log.With().Str("component", "notifier").Logger(),
	}
}

// Fanout creates one new_blog notification per follower of the article's
// author and returns how many it created. The author is skipped even if a
// self-follow edge exists. Calling it twice creates duplicates.
func (n *Notifier) Fanout(ctx context.Context, article *models.Article) (int, error) {
	followers, err := n.follows.FindFollowers(ctx, article.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("find followers of %s: %w", article.AuthorID, err)
	}

	batch := make([]models.Notification, 0, len(followers))
	for _, followerID := range followers {
		if followerID == article.AuthorID {
			continue
		}
		articleID := article.ID
		batch = append(batch, models.Notification{
			RecipientID: followerID,
			SenderID:    article.AuthorID,
			Kind:        models.NotificationNewBlog,
			ArticleID:   &articleID,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := n.notifications.CreateMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("create %d notifications: %w", len(batch), err)
	}
	return len(batch), nil
}

// Dispatch runs Fanout in the background and returns immediately.
func (n *Notifier) Dispatch(ctx context.Context, article models.Article) {
	n.detach(ctx, func(ctx context.Context) {
		count, err := n.Fanout(ctx, &article)
		if err != nil {
			n.log.Error().Err(err).
				Uint("article_id", article.ID).
				Str("author_id", article.AuthorID).
				Msg("new_blog fanout failed")
			return
		}
		n.log.Debug().Uint("article_id", article.ID).Int("count", count).Msg("new_blog fanout done")
	})
}

// Notify stores a single notification in the background.
func (n *Notifier) Notify(ctx context.Context, notification models.Notification) {
	if notification.RecipientID == notification.SenderID {
		return
	}
	n.detach(ctx, func(ctx context.Context) {
		batch := []models.Notification{notification}
		if err := n.notifications.CreateMany(ctx, batch); err != nil {
			n.log.Error().Err(err).
				Str("kind", string(notification.Kind)).
				Str("recipient_id", notification.RecipientID).
				Msg("notification failed")
		}
	})
}

// Wait blocks until every detached task has finished. Used on shutdown.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) detach(ctx context.Context, task func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.log.Error().Interface("panic", r).Msg("notifier task panicked")
			}
		}()
		task(ctx)
	}()
}
