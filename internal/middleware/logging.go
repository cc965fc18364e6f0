package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/timz-app/timz-api/internal/constants"
	"github.com/timz-app/timz-api/pkg/logger"
)

// LoggingMiddleware logs each request through zap.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.GetLogger().Error("HTTP request", fields...)
		case latency > 2*time.Second:
			logger.GetLogger().Warn("Slow request", fields...)
		default:
			logger.GetLogger().Info("HTTP request", fields...)
		}
	}
}

// RecoveryMiddleware turns panics into 500 responses and logs the stack.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.GetLogger().Error("Panic recovered",
					zap.Any("panic", recovered),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					constants.BuildErrorResponse("internal server error", nil))
			}
		}()
		c.Next()
	}
}
