package auth

import (
	"github.com/gin-gonic/gin"
)

// Context key for the resolved caller identity.
const CallerIDKey = "caller_id"

// GetCallerID extracts the authenticated caller's user id from the
// Gin context.
func GetCallerID(c *gin.Context) (string, bool) {
	if callerID, exists := c.Get(CallerIDKey); exists {
		if id, ok := callerID.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// SetCallerID stores the authenticated caller's user id in the Gin
// context for downstream handlers.
func SetCallerID(c *gin.Context, userID string) {
	c.Set(CallerIDKey, userID)
}
