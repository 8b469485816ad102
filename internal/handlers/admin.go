package handlers

import (
	"net/http"

	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation endpoints; routes sit behind
// middleware.AdminRequired.
type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ToggleBlock PATCH /admin/users/:id/block
func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	user, err := h.admin.ToggleBlocked(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ToggleVerify PATCH /admin/users/:id/verify
func (h *AdminHandler) ToggleVerify(c *gin.Context) {
	user, err := h.admin.ToggleVerified(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
