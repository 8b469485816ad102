package handlers

import (
	"net/http"

	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type CommentHandler struct {
	comments *services.CommentService
	cache    *TreeCache
}

func NewCommentHandler(comments *services.CommentService, cache *TreeCache) *CommentHandler {
	return &CommentHandler{comments: comments, cache: cache}
}

// List GET /articles/:slug/comments
func (h *CommentHandler) List(c *gin.Context) {
	slug := c.Param("slug")
	if tree, ok := h.cache.Get(slug); ok {
		c.JSON(http.StatusOK, gin.H{"comments": tree})
		return
	}

	// a write during the load bumps the generation and the stale tree is not kept
	gen := h.cache.Generation(slug)
	tree, err := h.comments.List(c.Request.Context(), slug)
	if err != nil {
		RespondError(c, err)
		return
	}
	services.RenderTree(tree)
	h.cache.SetIfUnchanged(slug, gen, tree)

	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

// Create POST /articles/:slug/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	slug := c.Param("slug")
	comment, err := h.comments.Create(c.Request.Context(), slug, currentUser(c), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Delete(slug)

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Reply POST /articles/:slug/comments/:id/reply
func (h *CommentHandler) Reply(c *gin.Context) {
	parentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	slug := c.Param("slug")
	reply, err := h.comments.Reply(c.Request.Context(), slug, parentID, currentUser(c), req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Delete(slug)

	c.JSON(http.StatusCreated, gin.H{"comment": reply})
}

// Delete DELETE /articles/:slug/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	slug := c.Param("slug")
	removed, err := h.comments.Delete(c.Request.Context(), slug, id, currentUser(c))
	// a cascade may fail halfway, so invalidate either way
	h.cache.Delete(slug)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

// DeleteReply DELETE /articles/:slug/comments/:id/replies/:replyId
func (h *CommentHandler) DeleteReply(c *gin.Context) {
	parentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	replyID, ok := paramID(c, "replyId")
	if !ok {
		return
	}

	slug := c.Param("slug")
	if err := h.comments.DeleteReply(c.Request.Context(), slug, parentID, replyID, currentUser(c)); err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Delete(slug)

	c.JSON(http.StatusOK, gin.H{"deleted": 1})
}

// ToggleLike PATCH /articles/:slug/comments/:id/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	slug := c.Param("slug")
	comment, err := h.comments.ToggleLike(c.Request.Context(), slug, id, currentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Delete(slug)

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}
