package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mudawwana/internal/logging"
	"mudawwana/internal/models"
	"mudawwana/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// Claims are the identity-provider token claims we rely on. The subject is
// the stable user id.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens signed by the identity provider.
type Verifier struct {
	secret []byte
	issuer string
	admins map[string]bool
}

func NewVerifier(secret, issuer string, admins map[string]bool) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, admins: admins}
}

// Verify parses and validates a token and returns the caller as a user
// record (not yet persisted).
func (v *Verifier) Verify(token string) (*models.User, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.Email == "" {
		return nil, errors.New("token missing subject or email")
	}

	user := &models.User{
		ID:       claims.Subject,
		Email:    strings.ToLower(claims.Email),
		Name:     claims.Name,
		PhotoURL: claims.Picture,
		Role:     models.RoleUser,
	}
	if user.Name == "" {
		user.Name = strings.SplitN(user.Email, "@", 2)[0]
	}
	if claims.Role == models.RoleAdmin || v.admins[user.Email] {
		user.Role = models.RoleAdmin
	}
	return user, nil
}

// UnreadCounter reports how many notifications a user has not read.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// Authenticate resolves the bearer token, if any, into the current user and
// their unread notification count. Requests without a token pass through
// anonymous; a bad token is rejected.
func Authenticate(v *Verifier, users store.UserStore, notifications UnreadCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c)
			return
		}

		identity, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			logging.Debug().Err(err).Msg("rejected bearer token")
			abortUnauthorized(c)
			return
		}

		wantAdmin := identity.IsAdmin()
		user := identity
		if err := users.Upsert(c.Request.Context(), user); err != nil {
			logging.Error().Err(err).Str("user_id", identity.ID).Msg("upsert user failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "خطأ في الخادم"})
			return
		}
		if wantAdmin && !user.IsAdmin() {
			user.Role = models.RoleAdmin
			if err := users.Save(c.Request.Context(), user); err != nil {
				logging.Error().Err(err).Str("user_id", user.ID).Msg("promote admin failed")
			}
		}
		c.Set(CheckUserKey, user)

		count, err := notifications.UnreadCount(c.Request.Context(), user.ID)
		if err == nil {
			c.Set(UnreadCountKey, count)
		}
		c.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// AdminRequired rejects callers without the admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "هذه الصفحة للمشرفين فقط"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="mudawwana"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "يجب تسجيل الدخول"})
}
