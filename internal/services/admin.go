package services

import (
	"context"
	"fmt"

	"mudawwana/internal/models"
	"mudawwana/internal/store"
)

// AdminService flips moderation flags. Each toggle is a plain
// read-modify-write; concurrent toggles are last-writer-wins.
type AdminService struct {
	users store.UserStore
}

func NewAdminService(users store.UserStore) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) ToggleBlocked(ctx context.Context, userID string) (*models.User, error) {
	return s.toggle(ctx, userID, func(u *models.User) { u.IsBlocked = !u.IsBlocked })
}

func (s *AdminService) ToggleVerified(ctx context.Context, userID string) (*models.User, error) {
	return s.toggle(ctx, userID, func(u *models.User) { u.IsVerified = !u.IsVerified })
}

func (s *AdminService) toggle(ctx context.Context, userID string, flip func(*models.User)) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, notFoundError(err, msgUserNotFound)
	}
	flip(user)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %s: %w", userID, err)
	}
	return user, nil
}
