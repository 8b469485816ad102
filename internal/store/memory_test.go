package store

import (
	"context"
	"testing"
	"time"

	"mudawwana/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCommentsOldestFirstStable(t *testing.T) {
	mem := NewMemory()
	st := mem.Stores()
	ctx := context.Background()

	same := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	late := &models.Comment{ArticleID: 1, Content: "late", CreatedAt: same.Add(time.Minute)}
	tie1 := &models.Comment{ArticleID: 1, Content: "tie1", CreatedAt: same}
	tie2 := &models.Comment{ArticleID: 1, Content: "tie2", CreatedAt: same}
	other := &models.Comment{ArticleID: 2, Content: "other"}
	for _, c := range []*models.Comment{late, tie1, tie2, other} {
		require.NoError(t, st.Comments.Create(ctx, c))
	}

	got, err := st.Comments.Find(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"tie1", "tie2", "late"}, []string{got[0].Content, got[1].Content, got[2].Content})
}

func TestMemoryDeleteWhereParent(t *testing.T) {
	st := NewMemory().Stores()
	ctx := context.Background()

	parent := &models.Comment{ArticleID: 1}
	require.NoError(t, st.Comments.Create(ctx, parent))
	for i := 0; i < 2; i++ {
		require.NoError(t, st.Comments.Create(ctx, &models.Comment{ArticleID: 1, ParentID: &parent.ID}))
	}

	n, err := st.Comments.DeleteWhereParent(ctx, parent.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, st.Comments.DeleteByID(ctx, parent.ID))
	assert.ErrorIs(t, st.Comments.DeleteByID(ctx, parent.ID), ErrNotFound)

	_, err = st.Comments.Get(ctx, parent.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryLikesAreASet(t *testing.T) {
	st := NewMemory().Stores()
	ctx := context.Background()

	c := &models.Comment{ArticleID: 1}
	require.NoError(t, st.Comments.Create(ctx, c))
	require.NoError(t, st.Comments.AddLike(ctx, c.ID, "a@x.io"))
	require.NoError(t, st.Comments.AddLike(ctx, c.ID, "a@x.io"))
	require.NoError(t, st.Comments.AddLike(ctx, c.ID, "b@x.io"))

	got, err := st.Comments.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, got.Likes)

	require.NoError(t, st.Comments.RemoveLike(ctx, c.ID, "a@x.io"))
	got, err = st.Comments.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.io"}, got.Likes)
}

func TestMemoryUpsertKeepsFlags(t *testing.T) {
	st := NewMemory().Stores()
	ctx := context.Background()

	u := &models.User{ID: "u1", Email: "old@x.io", Name: "قديم"}
	require.NoError(t, st.Users.Upsert(ctx, u))
	assert.Equal(t, models.RoleUser, u.Role)

	u.IsBlocked = true
	require.NoError(t, st.Users.Save(ctx, u))

	fresh := &models.User{ID: "u1", Email: "new@x.io", Name: "جديد"}
	require.NoError(t, st.Users.Upsert(ctx, fresh))
	assert.True(t, fresh.IsBlocked)
	assert.Equal(t, "new@x.io", fresh.Email)
	assert.Equal(t, "جديد", fresh.Name)
}

func TestMemoryNotificationsNewestFirst(t *testing.T) {
	mem := NewMemory()
	st := mem.Stores()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.Notifications.CreateMany(ctx, []models.Notification{
		{RecipientID: "r", SenderID: "s", Kind: models.NotificationFollow, CreatedAt: base},
		{RecipientID: "r", SenderID: "s", Kind: models.NotificationLike, CreatedAt: base.Add(time.Hour)},
		{RecipientID: "q", SenderID: "s", Kind: models.NotificationLike},
	}))

	list, err := st.Notifications.ListFor(ctx, "r", 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationLike, list[0].Kind)

	list, err = st.Notifications.ListFor(ctx, "r", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
