package services

import (
	"mudawwana/internal/store"

	"github.com/rs/zerolog"
)

// Services bundles every service built on one set of stores.
type Services struct {
	Notifier      *Notifier
	Comments      *CommentService
	Articles      *ArticleService
	Follows       *FollowService
	Notifications *NotificationService
	Admin         *AdminService
	Users         store.UserStore
}

func New(st *store.Stores, log zerolog.Logger) *Services {
	notifier := NewNotifier(st.Follows, st.Notifications, log)
	return &Services{
		Notifier:      notifier,
		Comments:      NewCommentService(st.Comments, st.Articles, notifier),
		Articles:      NewArticleService(st.Articles, st.Comments, st.Follows, notifier),
		Follows:       NewFollowService(st.Follows, st.Users, notifier),
		Notifications: NewNotificationService(st.Notifications),
		Admin:         NewAdminService(st.Users),
		Users:         st.Users,
	}
}
