package handlers

import (
	"net/http"

	"mudawwana/internal/middleware"
	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	follows *services.FollowService
}

func NewUserHandler(follows *services.FollowService) *UserHandler {
	return &UserHandler{follows: follows}
}

// Profile GET /users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.follows.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Me GET /me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":   currentUser(c),
		"unread": c.GetInt64(middleware.UnreadCountKey),
	})
}

// Follow POST /users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	if err := h.follows.Follow(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true})
}

// Unfollow DELETE /users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.follows.Unfollow(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}
