package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"mudawwana/internal/logging"
	"mudawwana/internal/middleware"
	"mudawwana/internal/models"
	"mudawwana/internal/services"
	"mudawwana/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// TreeCache holds built comment trees keyed by article slug.
type TreeCache = utils.TTLCache[[]*services.CommentNode]

const msgServerError = "حدث خطأ في الخادم، حاول لاحقاً"

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules. Call before serving.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
				return strings.TrimSpace(fl.Field().String()) != ""
			})
		}
	})
}

// RespondError maps service errors to a status and an {"error": msg} body.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	message := msgServerError
	var appErr *services.Error
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		logging.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			badRequest(c, "الحقل "+strings.ToLower(verrs[0].Field())+" غير صالح")
			return false
		}
		badRequest(c, "طلب غير صالح")
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "معرّف غير صالح")
		return 0, false
	}
	return uint(id), true
}

// currentUser is only called behind AuthRequired.
func currentUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}
