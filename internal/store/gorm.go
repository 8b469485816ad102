package store

import (
	"context"
	"errors"

	"mudawwana/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGorm wires every store to the same database handle.
func NewGorm(db *gorm.DB) *Stores {
	return &Stores{
		Comments:      &GormComments{db: db},
		Follows:       &GormFollows{db: db},
		Notifications: &GormNotifications{db: db},
		Articles:      &GormArticles{db: db},
		Users:         &GormUsers{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ---- comments ----

type GormComments struct {
	db *gorm.DB
}

func (s *GormComments) Find(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	if err := s.fillLikes(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// fillLikes loads liker emails for all comments in one query.
func (s *GormComments) fillLikes(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	var likes []models.CommentLike
	if err := s.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return err
	}

	byComment := make(map[uint][]string)
	for _, l := range likes {
		byComment[l.CommentID] = append(byComment[l.CommentID], l.Email)
	}
	for i := range comments {
		comments[i].Likes = byComment[comments[i].ID]
		if comments[i].Likes == nil {
			comments[i].Likes = []string{}
		}
	}
	return nil
}

func (s *GormComments) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, notFound(err)
	}
	one := []models.Comment{comment}
	if err := s.fillLikes(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *GormComments) Create(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	return nil
}

func (s *GormComments) DeleteByID(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormComments) DeleteWhereParent(ctx context.Context, parentID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("parent_id = ?", parentID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}

func (s *GormComments) DeleteByArticle(ctx context.Context, articleID uint) error {
	return s.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&models.Comment{}).Error
}

func (s *GormComments) AddLike(ctx context.Context, commentID uint, email string) error {
	like := models.CommentLike{CommentID: commentID, Email: email}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (s *GormComments) RemoveLike(ctx context.Context, commentID uint, email string) error {
	return s.db.WithContext(ctx).
		Where("comment_id = ? AND email = ?", commentID, email).
		Delete(&models.CommentLike{}).Error
}

// ---- follows ----

type GormFollows struct {
	db *gorm.DB
}

func (s *GormFollows) FindFollowers(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Order("id ASC").
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (s *GormFollows) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormFollows) Create(ctx context.Context, follow *models.Follow) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

func (s *GormFollows) Delete(ctx context.Context, followerID, followingID string) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (s *GormFollows) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *GormFollows) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// ---- notifications ----

type GormNotifications struct {
	db *gorm.DB
}

func (s *GormNotifications) CreateMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(&notifications).Error
}

func (s *GormNotifications) ListFor(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (s *GormNotifications) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (s *GormNotifications) UpdateManyRead(ctx context.Context, recipientID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *GormNotifications) DeleteAllFor(ctx context.Context, recipientID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("recipient_id = ?", recipientID).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// ---- articles ----

type GormArticles struct {
	db *gorm.DB
}

func (s *GormArticles) Create(ctx context.Context, article *models.Article) error {
	return s.db.WithContext(ctx).Create(article).Error
}

func (s *GormArticles) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, notFound(err)
	}
	return &article, nil
}

func (s *GormArticles) List(ctx context.Context, page, perPage int, category string) ([]models.Article, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Article{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := query.Order("created_at DESC, id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&articles).Error
	return articles, total, err
}

func (s *GormArticles) Related(ctx context.Context, article *models.Article, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Select("id, slug, title, author_id, author_name, category, created_at").
		Where("category = ? AND id <> ?", article.Category, article.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (s *GormArticles) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.Article{}, id).Error
}

func (s *GormArticles) GetReaction(ctx context.Context, articleID uint, userID string) (int, error) {
	var reaction models.ArticleReaction
	err := s.db.WithContext(ctx).Where("article_id = ? AND user_id = ?", articleID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return reaction.Value, nil
}

func (s *GormArticles) SetReaction(ctx context.Context, articleID uint, userID string, value int) error {
	tx := s.db.WithContext(ctx)
	if value == 0 {
		return tx.Where("article_id = ? AND user_id = ?", articleID, userID).Delete(&models.ArticleReaction{}).Error
	}
	reaction := models.ArticleReaction{ArticleID: articleID, UserID: userID, Value: value}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&reaction).Error
}

func (s *GormArticles) ReactionCounts(ctx context.Context, articleID uint) (models.ReactionCounts, error) {
	type countResult struct {
		Value int
		Count int64
	}
	var results []countResult
	err := s.db.WithContext(ctx).Model(&models.ArticleReaction{}).
		Select("value, COUNT(*) as count").
		Where("article_id = ?", articleID).
		Group("value").
		Scan(&results).Error
	if err != nil {
		return models.ReactionCounts{}, err
	}

	var counts models.ReactionCounts
	for _, r := range results {
		switch r.Value {
		case models.ReactionLike:
			counts.Likes = r.Count
		case models.ReactionDislike:
			counts.Dislikes = r.Count
		}
	}
	return counts, nil
}

// ---- users ----

type GormUsers struct {
	db *gorm.DB
}

func (s *GormUsers) Upsert(ctx context.Context, user *models.User) error {
	tx := s.db.WithContext(ctx)
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "photo_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return err
	}
	// re-read to pick up role and flags
	return tx.First(user, "id = ?", user.ID).Error
}

func (s *GormUsers) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormUsers) Save(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}
