package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"mudawwana/internal/models"
)

// Memory keeps every collection in process. It backs STORE_DRIVER=memory and
// the service and handler tests.
type Memory struct {
	mu sync.Mutex

	now func() time.Time
	seq uint

	users         map[string]models.User
	articles      []models.Article
	reactions     map[uint]map[string]int
	comments      []models.Comment
	likes         map[uint][]string
	follows       []models.Follow
	notifications []models.Notification
}

func NewMemory() *Memory {
	return &Memory{
		now:       time.Now,
		users:     make(map[string]models.User),
		reactions: make(map[uint]map[string]int),
		likes:     make(map[uint][]string),
	}
}

// SetClock replaces the timestamp source used for new records.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Stores exposes the memory store through every interface.
func (m *Memory) Stores() *Stores {
	return &Stores{
		Comments:      memComments{m},
		Follows:       memFollows{m},
		Notifications: memNotifications{m},
		Articles:      memArticles{m},
		Users:         memUsers{m},
	}
}

func (m *Memory) nextID() uint {
	m.seq++
	return m.seq
}

func (m *Memory) stamp(t *time.Time) {
	if t.IsZero() {
		*t = m.now()
	}
}

// ---- comments ----

type memComments struct{ m *Memory }

func (s memComments) withLikes(c models.Comment) models.Comment {
	c.Likes = append([]string{}, s.m.likes[c.ID]...)
	return c
}

func (s memComments) Find(_ context.Context, articleID uint) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	out := make([]models.Comment, 0)
	for _, c := range s.m.comments {
		if c.ArticleID == articleID {
			out = append(out, s.withLikes(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s memComments) Get(_ context.Context, id uint) (*models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, c := range s.m.comments {
		if c.ID == id {
			out := s.withLikes(c)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s memComments) Create(_ context.Context, comment *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	comment.ID = s.m.nextID()
	s.m.stamp(&comment.CreatedAt)
	comment.Likes = []string{}
	s.m.comments = append(s.m.comments, *comment)
	return nil
}

func (s memComments) DeleteByID(_ context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	n := s.m.deleteComments(func(c models.Comment) bool { return c.ID == id })
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s memComments) DeleteWhereParent(_ context.Context, parentID uint) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	n := s.m.deleteComments(func(c models.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	})
	return n, nil
}

func (s memComments) DeleteByArticle(_ context.Context, articleID uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.deleteComments(func(c models.Comment) bool { return c.ArticleID == articleID })
	return nil
}

func (m *Memory) deleteComments(match func(models.Comment) bool) int64 {
	kept := m.comments[:0]
	var n int64
	for _, c := range m.comments {
		if match(c) {
			delete(m.likes, c.ID)
			n++
			continue
		}
		kept = append(kept, c)
	}
	m.comments = kept
	return n
}

func (s memComments) AddLike(_ context.Context, commentID uint, email string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, e := range s.m.likes[commentID] {
		if e == email {
			return nil
		}
	}
	s.m.likes[commentID] = append(s.m.likes[commentID], email)
	return nil
}

func (s memComments) RemoveLike(_ context.Context, commentID uint, email string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	kept := make([]string, 0, len(s.m.likes[commentID]))
	for _, e := range s.m.likes[commentID] {
		if e != email {
			kept = append(kept, e)
		}
	}
	s.m.likes[commentID] = kept
	return nil
}

// ---- follows ----

type memFollows struct{ m *Memory }

func (s memFollows) FindFollowers(_ context.Context, userID string) ([]string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var ids []string
	for _, f := range s.m.follows {
		if f.FollowingID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	return ids, nil
}

func (s memFollows) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, f := range s.m.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (s memFollows) Create(_ context.Context, follow *models.Follow) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, f := range s.m.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return nil
		}
	}
	follow.ID = s.m.nextID()
	s.m.stamp(&follow.CreatedAt)
	s.m.follows = append(s.m.follows, *follow)
	return nil
}

func (s memFollows) Delete(_ context.Context, followerID, followingID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	kept := s.m.follows[:0]
	for _, f := range s.m.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			continue
		}
		kept = append(kept, f)
	}
	s.m.follows = kept
	return nil
}

func (s memFollows) CountFollowers(_ context.Context, userID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var n int64
	for _, f := range s.m.follows {
		if f.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (s memFollows) CountFollowing(_ context.Context, userID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var n int64
	for _, f := range s.m.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

// ---- notifications ----

type memNotifications struct{ m *Memory }

func (s memNotifications) CreateMany(_ context.Context, notifications []models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for i := range notifications {
		notifications[i].ID = s.m.nextID()
		s.m.stamp(&notifications[i].CreatedAt)
		s.m.notifications = append(s.m.notifications, notifications[i])
	}
	return nil
}

func (s memNotifications) ListFor(_ context.Context, recipientID string, limit int) ([]models.Notification, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	out := make([]models.Notification, 0)
	for i := len(s.m.notifications) - 1; i >= 0; i-- {
		n := s.m.notifications[i]
		if n.RecipientID != recipientID {
			continue
		}
		if u, ok := s.m.users[n.SenderID]; ok {
			n.Sender = &u
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memNotifications) CountUnread(_ context.Context, recipientID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var n int64
	for _, no := range s.m.notifications {
		if no.RecipientID == recipientID && !no.IsRead {
			n++
		}
	}
	return n, nil
}

func (s memNotifications) UpdateManyRead(_ context.Context, recipientID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var n int64
	for i := range s.m.notifications {
		if s.m.notifications[i].RecipientID == recipientID && !s.m.notifications[i].IsRead {
			s.m.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (s memNotifications) DeleteAllFor(_ context.Context, recipientID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	kept := s.m.notifications[:0]
	var n int64
	for _, no := range s.m.notifications {
		if no.RecipientID == recipientID {
			n++
			continue
		}
		kept = append(kept, no)
	}
	s.m.notifications = kept
	return n, nil
}

// ---- articles ----

type memArticles struct{ m *Memory }

func (s memArticles) Create(_ context.Context, article *models.Article) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	article.ID = s.m.nextID()
	s.m.stamp(&article.CreatedAt)
	article.UpdatedAt = article.CreatedAt
	s.m.articles = append(s.m.articles, *article)
	return nil
}

func (s memArticles) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, a := range s.m.articles {
		if a.Slug == slug {
			out := a
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// newestFirst returns the matching articles ordered newest first.
func (m *Memory) newestFirst(match func(models.Article) bool) []models.Article {
	out := make([]models.Article, 0)
	for i := len(m.articles) - 1; i >= 0; i-- {
		if match(m.articles[i]) {
			out = append(out, m.articles[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s memArticles) List(_ context.Context, page, perPage int, category string) ([]models.Article, int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	all := s.m.newestFirst(func(a models.Article) bool {
		return category == "" || a.Category == category
	})
	total := int64(len(all))

	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Article{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s memArticles) Related(_ context.Context, article *models.Article, limit int) ([]models.Article, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	out := s.m.newestFirst(func(a models.Article) bool {
		return a.Category == article.Category && a.ID != article.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memArticles) Delete(_ context.Context, id uint) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	kept := s.m.articles[:0]
	for _, a := range s.m.articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.m.articles = kept
	delete(s.m.reactions, id)
	return nil
}

func (s memArticles) GetReaction(_ context.Context, articleID uint, userID string) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	return s.m.reactions[articleID][userID], nil
}

func (s memArticles) SetReaction(_ context.Context, articleID uint, userID string, value int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if value == 0 {
		delete(s.m.reactions[articleID], userID)
		return nil
	}
	if s.m.reactions[articleID] == nil {
		s.m.reactions[articleID] = make(map[string]int)
	}
	s.m.reactions[articleID][userID] = value
	return nil
}

func (s memArticles) ReactionCounts(_ context.Context, articleID uint) (models.ReactionCounts, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var counts models.ReactionCounts
	for _, v := range s.m.reactions[articleID] {
		switch v {
		case models.ReactionLike:
			counts.Likes++
		case models.ReactionDislike:
			counts.Dislikes++
		}
	}
	return counts, nil
}

// ---- users ----

type memUsers struct{ m *Memory }

func (s memUsers) Upsert(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	now := s.m.now()
	existing, ok := s.m.users[user.ID]
	if !ok {
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		user.CreatedAt = now
		user.UpdatedAt = now
		s.m.users[user.ID] = *user
		return nil
	}

	existing.Email = user.Email
	existing.Name = user.Name
	existing.PhotoURL = user.PhotoURL
	existing.UpdatedAt = now
	s.m.users[user.ID] = existing
	*user = existing
	return nil
}

func (s memUsers) Get(_ context.Context, id string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s memUsers) Save(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	user.UpdatedAt = s.m.now()
	s.m.users[user.ID] = *user
	return nil
}
