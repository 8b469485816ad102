package router

import (
	"net/http"

	"mudawwana/internal/handlers"
	"mudawwana/internal/middleware"
	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps is everything the routes need.
type Deps struct {
	Services  *services.Services
	Verifier  *middleware.Verifier
	TreeCache *handlers.TreeCache
}

// New builds the engine with recovery, request logging and all routes.
func New(d Deps) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	articleHandler := handlers.NewArticleHandler(d.Services.Articles, d.TreeCache)
	commentHandler := handlers.NewCommentHandler(d.Services.Comments, d.TreeCache)
	userHandler := handlers.NewUserHandler(d.Services.Follows)
	notificationHandler := handlers.NewNotificationHandler(d.Services.Notifications)
	adminHandler := handlers.NewAdminHandler(d.Services.Admin)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(middleware.Authenticate(d.Verifier, d.Services.Users, d.Services.Notifications))

	// Public
	r.GET("/articles", articleHandler.List)
	r.GET("/articles/:slug", articleHandler.Detail)
	r.GET("/articles/:slug/comments", commentHandler.List)
	r.GET("/users/:id", userHandler.Profile)

	// Signed in
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Me)

		authorized.POST("/articles", articleHandler.Create)
		authorized.DELETE("/articles/:slug", articleHandler.Delete)
		authorized.PATCH("/articles/:slug/like", articleHandler.Like)
		authorized.PATCH("/articles/:slug/dislike", articleHandler.Dislike)

		authorized.POST("/articles/:slug/comments", commentHandler.Create)
		authorized.DELETE("/articles/:slug/comments/:id", commentHandler.Delete)
		authorized.PATCH("/articles/:slug/comments/:id/like", commentHandler.ToggleLike)
		authorized.POST("/articles/:slug/comments/:id/reply", commentHandler.Reply)
		authorized.DELETE("/articles/:slug/comments/:id/replies/:replyId", commentHandler.DeleteReply)

		authorized.POST("/users/:id/follow", userHandler.Follow)
		authorized.DELETE("/users/:id/follow", userHandler.Unfollow)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.PATCH("/notifications/mark-read", notificationHandler.MarkAllRead)
		authorized.DELETE("/notifications/clear-all", notificationHandler.ClearAll)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.PATCH("/users/:id/block", adminHandler.ToggleBlock)
		admin.PATCH("/users/:id/verify", adminHandler.ToggleVerify)
	}
}
