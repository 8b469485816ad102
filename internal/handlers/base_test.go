package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mudawwana/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &services.Error{Kind: services.ErrValidation, Message: "المحتوى مطلوب"}, http.StatusBadRequest, "المحتوى مطلوب"},
		{"not found wrapped", fmt.Errorf("list: %w", &services.Error{Kind: services.ErrNotFound, Message: "غير موجود"}), http.StatusNotFound, "غير موجود"},
		{"forbidden", &services.Error{Kind: services.ErrForbidden, Message: "ممنوع"}, http.StatusForbidden, "ممنوع"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, msgServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.message), w.Body.String())
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestNotBlankBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	bind := func(body string) (int, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req commentRequest
		ok := bindJSON(c, &req)
		return w.Code, ok
	}

	_, ok := bind(`{"content":"مرحبا"}`)
	assert.True(t, ok)

	code, ok := bind(`{"content":"   "}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)

	code, ok = bind(`{`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
}
