package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"mudawwana/internal/models"
	"mudawwana/internal/store"
)

const maxCommentRunes = 5000

type CommentService struct {
	comments store.CommentStore
	articles store.ArticleStore
	notifier *Notifier
}

func NewCommentService(comments store.CommentStore, articles store.ArticleStore, notifier *Notifier) *CommentService {
	return &CommentService{comments: comments, articles: articles, notifier: notifier}
}

func (s *CommentService) article(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundError(err, msgArticleNotFound)
	}
	return article, nil
}

// comment loads a comment and checks it belongs to the article.
func (s *CommentService) comment(ctx context.Context, article *models.Article, id uint) (*models.Comment, error) {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return nil, notFoundError(err, msgCommentNotFound)
	}
	if comment.ArticleID != article.ID {
		return nil, &Error{Kind: ErrNotFound, Message: msgCommentNotFound}
	}
	return comment, nil
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("لا يمكن أن يكون التعليق فارغاً")
	}
	if utf8.RuneCountInString(content) > maxCommentRunes {
		return "", validationError(fmt.Sprintf("التعليق أطول من %d حرف", maxCommentRunes))
	}
	return content, nil
}

// List returns the article's comments as a two-level tree, oldest first.
func (s *CommentService) List(ctx context.Context, slug string) ([]*CommentNode, error) {
	article, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Find(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("load comments of %s: %w", slug, err)
	}
	return BuildTree(comments), nil
}

// Create adds a top-level comment.
func (s *CommentService) Create(ctx context.Context, slug string, actor *models.User, content string) (*models.Comment, error) {
	return s.create(ctx, slug, actor, content, nil)
}

// Reply adds a reply under a top-level comment. Replying to a reply is
// rejected so threads stay two levels deep.
func (s *CommentService) Reply(ctx context.Context, slug string, parentID uint, actor *models.User, content string) (*models.Comment, error) {
	return s.create(ctx, slug, actor, content, &parentID)
}

func (s *CommentService) create(ctx context.Context, slug string, actor *models.User, content string, parentID *uint) (*models.Comment, error) {
	if actor.IsBlocked {
		return nil, forbiddenError(msgBlocked)
	}
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}

	article, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comment(ctx, article, *parentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsTopLevel() {
			return nil, validationError("لا يمكن الرد على رد")
		}
	}

	comment := models.Comment{
		ArticleID:      article.ID,
		ParentID:       parentID,
		Content:        content,
		AuthorID:       actor.ID,
		AuthorName:     actor.Name,
		AuthorEmail:    actor.Email,
		AuthorPhotoURL: actor.PhotoURL,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment owned by actor. A top-level comment takes its
// replies with it: replies go first, then the comment. It returns how many
// records were removed.
func (s *CommentService) Delete(ctx context.Context, slug string, id uint, actor *models.User) (int64, error) {
	article, err := s.article(ctx, slug)
	if err != nil {
		return 0, err
	}
	comment, err := s.comment(ctx, article, id)
	if err != nil {
		return 0, err
	}
	if comment.AuthorID != actor.ID {
		return 0, forbiddenError("لا يمكنك حذف تعليق غيرك")
	}

	var removed int64
	if comment.IsTopLevel() {
		n, err := s.comments.DeleteWhereParent(ctx, comment.ID)
		if err != nil {
			return 0, fmt.Errorf("delete replies of comment %d: %w", comment.ID, err)
		}
		removed = n
	}
	if err := s.comments.DeleteByID(ctx, comment.ID); err != nil {
		return removed, fmt.Errorf("delete comment %d after %d replies: %w", comment.ID, removed, err)
	}
	return removed + 1, nil
}

// DeleteReply removes one reply of parentID.
func (s *CommentService) DeleteReply(ctx context.Context, slug string, parentID, replyID uint, actor *models.User) error {
	article, err := s.article(ctx, slug)
	if err != nil {
		return err
	}
	reply, err := s.comment(ctx, article, replyID)
	if err != nil {
		return err
	}
	if reply.ParentID == nil || *reply.ParentID != parentID {
		return &Error{Kind: ErrNotFound, Message: "الرد غير موجود"}
	}
	if reply.AuthorID != actor.ID {
		return forbiddenError("لا يمكنك حذف رد غيرك")
	}
	if err := s.comments.DeleteByID(ctx, reply.ID); err != nil {
		return fmt.Errorf("delete reply %d: %w", reply.ID, err)
	}
	return nil
}

// ToggleLike adds the actor's email to the comment's likes, or removes it if
// already present, and returns the updated comment.
func (s *CommentService) ToggleLike(ctx context.Context, slug string, id uint, actor *models.User) (*models.Comment, error) {
	article, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}
	comment, err := s.comment(ctx, article, id)
	if err != nil {
		return nil, err
	}

	liked := comment.LikedBy(actor.Email)
	if liked {
		err = s.comments.RemoveLike(ctx, comment.ID, actor.Email)
	} else {
		err = s.comments.AddLike(ctx, comment.ID, actor.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like on comment %d: %w", comment.ID, err)
	}

	if !liked {
		articleID := article.ID
		s.notifier.Notify(ctx, models.Notification{
			RecipientID: comment.AuthorID,
			SenderID:    actor.ID,
			Kind:        models.NotificationLike,
			ArticleID:   &articleID,
		})
	}

	updated, err := s.comments.Get(ctx, comment.ID)
	if err != nil {
		return nil, notFoundError(err, msgCommentNotFound)
	}
	return updated, nil
}
