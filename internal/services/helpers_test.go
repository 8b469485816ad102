package services

import (
	"context"
	"testing"
	"time"

	"mudawwana/internal/models"
	"mudawwana/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	mem *store.Memory
	st  *store.Stores
	svc *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	st := mem.Stores()
	return &testEnv{mem: mem, st: st, svc: New(st, zerolog.Nop())}
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Email: id + "@example.com", Name: "مستخدم " + id}
	require.NoError(t, e.st.Users.Upsert(context.Background(), u))
	return u
}

func (e *testEnv) article(t *testing.T, author *models.User) *models.Article {
	t.Helper()
	a, err := e.svc.Articles.Create(context.Background(), author, ArticleInput{
		Title:    "درس في الخوارزميات",
		Content:  "محتوى الدرس",
		Category: "برمجة",
	})
	require.NoError(t, err)
	e.svc.Notifier.Wait()
	return a
}

func uintPtr(v uint) *uint { return &v }
