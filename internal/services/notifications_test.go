package services

import (
	"context"
	"testing"

	"mudawwana/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllReadAndClearAreScopedToRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	x := env.user(t, "x")
	for _, id := range []string{"a", "b"} {
		env.user(t, id)
		follow(t, env, id, x.ID)
	}
	env.article(t, x)
	env.article(t, x)

	list, err := env.svc.Notifications.List(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 2, list.Unread)
	require.NotNil(t, list.Notifications[0].Sender)
	assert.Equal(t, x.Name, list.Notifications[0].Sender.Name)

	n, err := env.svc.Notifications.MarkAllRead(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err = env.svc.Notifications.List(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, list.Unread)
	for _, no := range list.Notifications {
		assert.True(t, no.IsRead)
	}

	unreadB, err := env.svc.Notifications.UnreadCount(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unreadB)

	n, err = env.svc.Notifications.ClearAll(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err = env.svc.Notifications.List(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)

	list, err = env.svc.Notifications.List(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
}

func TestAdminToggles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")

	got, err := env.svc.Admin.ToggleBlocked(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	got, err = env.svc.Admin.ToggleVerified(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.True(t, got.IsBlocked)

	got, err = env.svc.Admin.ToggleBlocked(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked)

	stored, err := env.st.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.True(t, stored.IsVerified)

	_, err = env.svc.Admin.ToggleBlocked(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
