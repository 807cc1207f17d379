package middleware

import (
	"net/http"
	"strings"

	"github.com/sogebot/sogebot.dev-sub004/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired validates the bearer token against the identity
// provider and sets the caller identity in the request context. Every
// failure mode collapses into the same 401 body so nothing about the
// cause leaks to the client; details go to the server log only.
func AuthRequired(validator *auth.TokenValidator, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warnf("Missing authorization header from IP: %s", c.ClientIP())
			unauthorized(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warnf("Invalid authorization header format from IP: %s", c.ClientIP())
			unauthorized(c)
			return
		}

		userID, err := validator.Validate(c.Request.Context(), tokenParts[1])
		if err != nil {
			logger.Warnf("Token validation failed for IP %s: %v", c.ClientIP(), err)
			unauthorized(c)
			return
		}

		auth.SetCallerID(c, userID)

		logger.Debugf("Caller %s authenticated from IP: %s", userID, c.ClientIP())
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "unauthorized",
	})
	c.Abort()
}
