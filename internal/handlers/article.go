package handlers

import (
	"net/http"
	"strconv"

	"mudawwana/internal/models"
	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articles *services.ArticleService
	cache    *TreeCache
}

func NewArticleHandler(articles *services.ArticleService, cache *TreeCache) *ArticleHandler {
	return &ArticleHandler{articles: articles, cache: cache}
}

// List GET /articles?page=&category=
func (h *ArticleHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	result, err := h.articles.List(c.Request.Context(), page, c.Query("category"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Detail GET /articles/:slug
func (h *ArticleHandler) Detail(c *gin.Context) {
	detail, err := h.articles.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create POST /articles. The response does not wait for follower notifications.
func (h *ArticleHandler) Create(c *gin.Context) {
	var input services.ArticleInput
	if !bindJSON(c, &input) {
		return
	}

	article, err := h.articles.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Delete DELETE /articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.articles.Delete(c.Request.Context(), slug, currentUser(c)); err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Delete(slug)
	c.Status(http.StatusNoContent)
}

// Like PATCH /articles/:slug/like
func (h *ArticleHandler) Like(c *gin.Context) {
	h.react(c, models.ReactionLike)
}

// Dislike PATCH /articles/:slug/dislike
func (h *ArticleHandler) Dislike(c *gin.Context) {
	h.react(c, models.ReactionDislike)
}

func (h *ArticleHandler) react(c *gin.Context, value int) {
	counts, err := h.articles.React(c.Request.Context(), c.Param("slug"), currentUser(c), value)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reactions": counts})
}
