package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/util"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	userHeader  = "X-User-Id"
	guestHeader = "X-Guest-Id"

	maxPrincipalLen = 128
)

// Identity resolves the caller's principal. X-User-Id wins over X-Guest-Id;
// callers sending neither share an anonymous principal derived from the client IP.
// There is no authentication: the headers are trusted as-is.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if id := strings.TrimSpace(c.GetHeader(userHeader)); id != "" {
			if !validPrincipal(id) {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid X-User-Id header", nil)
				return
			}
			c.Set(userIDKey, "user:"+id)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}

		if id := strings.TrimSpace(c.GetHeader(guestHeader)); id != "" {
			if !validPrincipal(id) {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid X-Guest-Id header", nil)
				return
			}
			c.Set(userIDKey, "guest:"+id)
			c.Set(isGuestKey, true)
			c.Next()
			return
		}

		c.Set(userIDKey, "anon:"+util.HashUserKey(c.ClientIP())[:16])
		c.Set(isGuestKey, true)
		c.Next()
	}
}

func validPrincipal(id string) bool {
	if len(id) > maxPrincipalLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '@' || r == ':':
		default:
			return false
		}
	}
	return true
}

// UserIDFromContext fetches the principal set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
