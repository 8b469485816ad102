package services

import (
	"context"
	"errors"
	"testing"

	"mudawwana/internal/models"
	"mudawwana/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")

	_, err := env.svc.Articles.Create(ctx, u, ArticleInput{Title: " ", Content: "نص"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.Articles.Create(ctx, u, ArticleInput{Title: "عنوان", Content: ""})
	assert.ErrorIs(t, err, ErrValidation)

	u.IsBlocked = true
	_, err = env.svc.Articles.Create(ctx, u, ArticleInput{Title: "عنوان", Content: "نص"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetArticleDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")
	fan := env.user(t, "fan")
	follow(t, env, fan.ID, u.ID)

	first := env.article(t, u)
	second := env.article(t, u)
	_, err := env.svc.Articles.React(ctx, first.Slug, fan, models.ReactionLike)
	require.NoError(t, err)

	detail, err := env.svc.Articles.Get(ctx, first.Slug)
	require.NoError(t, err)
	assert.Equal(t, first.ID, detail.Article.ID)
	assert.Contains(t, detail.Article.ContentHTML, "محتوى الدرس")
	require.Len(t, detail.Related, 1)
	assert.Equal(t, second.ID, detail.Related[0].ID)
	assert.EqualValues(t, 1, detail.AuthorFollows)
	assert.Equal(t, models.ReactionCounts{Likes: 1}, detail.Reactions)

	_, err = env.svc.Articles.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingCounts struct {
	store.FollowStore
}

func (failingCounts) CountFollowers(context.Context, string) (int64, error) {
	return 0, errors.New("timeout")
}

func TestGetArticleFailsAsAWhole(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.article(t, u)

	notifier := NewNotifier(env.st.Follows, env.st.Notifications, zerolog.Nop())
	articles := NewArticleService(env.st.Articles, env.st.Comments, failingCounts{env.st.Follows}, notifier)

	detail, err := articles.Get(context.Background(), a.Slug)
	assert.Nil(t, detail)
	assert.ErrorContains(t, err, "timeout")
}

func TestListArticlesPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")
	var last *models.Article
	for i := 0; i < articlesPerPage+1; i++ {
		last = env.article(t, u)
	}

	page, err := env.svc.Articles.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, page.Articles, articlesPerPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, last.ID, page.Articles[0].ID)

	page, err = env.svc.Articles.List(ctx, 2, "")
	require.NoError(t, err)
	assert.Len(t, page.Articles, 1)

	page, err = env.svc.Articles.List(ctx, 0, "رياضيات")
	require.NoError(t, err)
	assert.Empty(t, page.Articles)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestDeleteArticle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")
	stranger := env.user(t, "s")
	admin := env.user(t, "admin")
	admin.Role = models.RoleAdmin

	a := env.article(t, u)
	_, err := env.svc.Comments.Create(ctx, a.Slug, stranger, "تعليق")
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Articles.Delete(ctx, a.Slug, stranger), ErrForbidden)
	require.NoError(t, env.svc.Articles.Delete(ctx, a.Slug, admin))

	_, err = env.st.Articles.GetBySlug(ctx, a.Slug)
	assert.ErrorIs(t, err, store.ErrNotFound)
	comments, err := env.st.Comments.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestReactToggles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "u")
	a := env.article(t, u)

	counts, err := env.svc.Articles.React(ctx, a.Slug, u, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionCounts{Likes: 1}, counts)

	counts, err = env.svc.Articles.React(ctx, a.Slug, u, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionCounts{Dislikes: 1}, counts)

	counts, err = env.svc.Articles.React(ctx, a.Slug, u, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionCounts{}, counts)

	_, err = env.svc.Articles.React(ctx, a.Slug, u, 5)
	assert.ErrorIs(t, err, ErrValidation)
}
