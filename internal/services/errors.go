package services

import (
	"errors"
	"fmt"

	"mudawwana/internal/store"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// Error carries a user-facing message next to its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
func forbiddenError(msg string) error  { return &Error{Kind: ErrForbidden, Message: msg} }

// notFoundError maps store.ErrNotFound to a user-facing not-found error and
// wraps anything else.
func notFoundError(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &Error{Kind: ErrNotFound, Message: msg}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

const (
	msgArticleNotFound = "المقال غير موجود"
	msgCommentNotFound = "التعليق غير موجود"
	msgUserNotFound    = "المستخدم غير موجود"
	msgBlocked         = "تم حظر حسابك، لا يمكنك النشر حالياً"
)
