package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/pkg/logger"
)

const (
	UserIDKey    = "user_id"
	UserIDHeader = "X-User-ID"
)

// IdentityMiddleware picks up the caller identity forwarded by the auth
// gateway. Requests without the header pass through anonymously.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID != "" {
			c.Set(UserIDKey, userID)
			ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetUserID returns the caller identity set by IdentityMiddleware
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
