package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"mudawwana/internal/models"
	"mudawwana/internal/store"
	"mudawwana/internal/utils"

	"golang.org/x/sync/errgroup"
)

const (
	articlesPerPage = 20
	relatedLimit    = 4
)

type ArticleInput struct {
	Title    string `json:"title" binding:"required,notblank,max=200"`
	Content  string `json:"content" binding:"required,notblank"`
	Category string `json:"category" binding:"max=100"`
}

type ArticleDetail struct {
	Article       *models.Article       `json:"article"`
	Related       []models.Article      `json:"related"`
	Reactions     models.ReactionCounts `json:"reactions"`
	AuthorFollows int64                 `json:"author_followers"`
}

type ArticlePage struct {
	Articles    []models.Article `json:"articles"`
	CurrentPage int              `json:"current_page"`
	TotalPages  int              `json:"total_pages"`
	Total       int64            `json:"total"`
}

type ArticleService struct {
	articles store.ArticleStore
	comments store.CommentStore
	follows  store.FollowStore
	notifier *Notifier
}

func NewArticleService(articles store.ArticleStore, comments store.CommentStore, follows store.FollowStore, notifier *Notifier) *ArticleService {
	return &ArticleService{articles: articles, comments: comments, follows: follows, notifier: notifier}
}

// Create stores the article and starts the follower fanout without waiting
// for it.
func (s *ArticleService) Create(ctx context.Context, actor *models.User, input ArticleInput) (*models.Article, error) {
	if actor.IsBlocked {
		return nil, forbiddenError(msgBlocked)
	}
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, validationError("العنوان مطلوب")
	}
	if content == "" {
		return nil, validationError("المحتوى مطلوب")
	}

	article := models.Article{
		Slug:           utils.NewSlug(title),
		AuthorID:       actor.ID,
		AuthorName:     actor.Name,
		AuthorPhotoURL: actor.PhotoURL,
		Title:          title,
		Content:        content,
		Category:       strings.TrimSpace(input.Category),
	}
	if err := s.articles.Create(ctx, &article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.notifier.Dispatch(ctx, article)
	return &article, nil
}

// Get loads the article, then its related articles, reaction counts and the
// author's follower count in parallel. Any failure fails the whole call.
func (s *ArticleService) Get(ctx context.Context, slug string) (*ArticleDetail, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundError(err, msgArticleNotFound)
	}
	article.ContentHTML = string(utils.RenderMarkdown(article.Content))

	detail := &ArticleDetail{Article: article}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		related, err := s.articles.Related(gctx, article, relatedLimit)
		if err != nil {
			return fmt.Errorf("related articles: %w", err)
		}
		detail.Related = related
		return nil
	})
	g.Go(func() error {
		counts, err := s.articles.ReactionCounts(gctx, article.ID)
		if err != nil {
			return fmt.Errorf("reaction counts: %w", err)
		}
		detail.Reactions = counts
		return nil
	})
	g.Go(func() error {
		n, err := s.follows.CountFollowers(gctx, article.AuthorID)
		if err != nil {
			return fmt.Errorf("author followers: %w", err)
		}
		detail.AuthorFollows = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if detail.Related == nil {
		detail.Related = []models.Article{}
	}
	return detail, nil
}

func (s *ArticleService) List(ctx context.Context, page int, category string) (*ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	articles, total, err := s.articles.List(ctx, page, articlesPerPage, category)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(articlesPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	return &ArticlePage{
		Articles:    articles,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}, nil
}

// Delete removes the article and its comments. Authors and admins only.
func (s *ArticleService) Delete(ctx context.Context, slug string, actor *models.User) error {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return notFoundError(err, msgArticleNotFound)
	}
	if article.AuthorID != actor.ID && !actor.IsAdmin() {
		return forbiddenError("لا يمكنك حذف هذا المقال")
	}

	if err := s.comments.DeleteByArticle(ctx, article.ID); err != nil {
		return fmt.Errorf("delete comments of %s: %w", slug, err)
	}
	if err := s.articles.Delete(ctx, article.ID); err != nil {
		return fmt.Errorf("delete article %s: %w", slug, err)
	}
	return nil
}

// React toggles a like (1) or dislike (-1). Sending the current value again
// clears it; sending the other value switches.
func (s *ArticleService) React(ctx context.Context, slug string, actor *models.User, value int) (models.ReactionCounts, error) {
	if value != models.ReactionLike && value != models.ReactionDislike {
		return models.ReactionCounts{}, validationError("تفاعل غير صالح")
	}
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return models.ReactionCounts{}, notFoundError(err, msgArticleNotFound)
	}

	current, err := s.articles.GetReaction(ctx, article.ID, actor.ID)
	if err != nil {
		return models.ReactionCounts{}, fmt.Errorf("load reaction: %w", err)
	}
	next := value
	if current == value {
		next = 0
	}
	if err := s.articles.SetReaction(ctx, article.ID, actor.ID, next); err != nil {
		return models.ReactionCounts{}, fmt.Errorf("save reaction: %w", err)
	}
	return s.articles.ReactionCounts(ctx, article.ID)
}
