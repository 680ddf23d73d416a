package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated operator's ID.
const userIDKey = contextKey("userID")

// WithUserID returns a context carrying the authenticated operator's ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	// Check the request context as well; jobs and tests set it there.
	return GetUserIDFromStdContext(c.Request.Context())
}

// GetUserIDFromStdContext retrieves the authenticated user ID from a plain
// context, for callers below the HTTP layer.
func GetUserIDFromStdContext(ctx context.Context) (string, bool) {
	if userIDVal := ctx.Value(userIDKey); userIDVal != nil {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
	}
	return "", false
}
