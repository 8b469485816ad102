package services

import (
	"context"
	"fmt"

	"mudawwana/internal/models"
	"mudawwana/internal/store"

	"golang.org/x/sync/errgroup"
)

type Profile struct {
	User      *models.User `json:"user"`
	Followers int64        `json:"followers"`
	Following int64        `json:"following"`
}

type FollowService struct {
	follows  store.FollowStore
	users    store.UserStore
	notifier *Notifier
}

func NewFollowService(follows store.FollowStore, users store.UserStore, notifier *Notifier) *FollowService {
	return &FollowService{follows: follows, users: users, notifier: notifier}
}

// Follow makes actor follow followingID. Following twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, actor *models.User, followingID string) error {
	if actor.ID == followingID {
		return validationError("لا يمكنك متابعة نفسك")
	}
	if _, err := s.users.Get(ctx, followingID); err != nil {
		return notFoundError(err, msgUserNotFound)
	}

	exists, err := s.follows.Exists(ctx, actor.ID, followingID)
	if err != nil {
		return fmt.Errorf("check follow: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.follows.Create(ctx, &models.Follow{FollowerID: actor.ID, FollowingID: followingID}); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	s.notifier.Notify(ctx, models.Notification{
		RecipientID: followingID,
		SenderID:    actor.ID,
		Kind:        models.NotificationFollow,
	})
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, actor *models.User, followingID string) error {
	if err := s.follows.Delete(ctx, actor.ID, followingID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// Profile returns the user with follower and following counts, both counted
// in parallel.
func (s *FollowService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, notFoundError(err, msgUserNotFound)
	}

	profile := &Profile{User: user}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.follows.CountFollowers(gctx, userID)
		profile.Followers = n
		return err
	})
	g.Go(func() error {
		n, err := s.follows.CountFollowing(gctx, userID)
		profile.Following = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("profile counts of %s: %w", userID, err)
	}
	return profile, nil
}
