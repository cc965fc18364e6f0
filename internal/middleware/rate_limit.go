package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/timz-app/timz-api/internal/constants"
	"github.com/timz-app/timz-api/pkg/logger"
)

// Limiter counts hits for a key inside a fixed window. The Redis client
// satisfies it when Redis is enabled; MemoryLimiter is the fallback.
type Limiter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// MemoryLimiter is an in-process fixed-window counter.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int64
	resetAt time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window)}
}

func (l *MemoryLimiter) IncrWindow(_ context.Context, key string, d time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		l.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// RateLimit rejects clients exceeding maxRequest hits per duration, keyed by
// client IP. A failing limiter backend lets the request through.
func RateLimit(limiter Limiter, maxRequest int, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		count, err := limiter.IncrWindow(c.Request.Context(), key, duration)
		if err != nil {
			logger.GetLogger().Warn("Rate limiter unavailable",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(maxRequest) {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				constants.BuildErrorResponse("too many requests", nil))
			return
		}

		c.Next()
	}
}
