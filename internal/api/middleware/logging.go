package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger records every request to the access log and escalates errors
// and slow requests to the main log.
func Logger(logger, accessLogger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		accessLogger.Infow("HTTP Request",
			"client_ip", clientIP,
			"method", c.Request.Method,
			"path", path,
			"status_code", statusCode,
			"latency", latency.String(),
			"user_agent", c.Request.UserAgent(),
			"error_message", errorMessage,
		)

		if statusCode >= 500 {
			logger.Errorw("HTTP Error",
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
				"error", errorMessage,
			)
		} else if statusCode >= 400 {
			logger.Warnw("HTTP Client Error",
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
			)
		} else if latency > 5*time.Second {
			logger.Warnw("Slow HTTP Request",
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
			)
		}
	}
}
