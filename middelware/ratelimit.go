package middelware

import (
	"context"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/utils/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimitMiddleware limits requests per client IP in fixed windows shared through Redis
type RateLimitMiddleware struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
	logger logger.Logger
}

// NewRateLimitMiddleware allows limit requests per client per minute
func NewRateLimitMiddleware(client *redis.Client, prefix string, limit int, log logger.Logger) *RateLimitMiddleware {
	if prefix == "" {
		prefix = "fooddonation"
	}
	return &RateLimitMiddleware{
		client: client,
		prefix: prefix + ":ratelimit",
		limit:  limit,
		window: time.Minute,
		now:    time.Now,
		logger: log,
	}
}

// Allow reports whether key is still within quota. A non-nil error means redis
// could not be asked and the caller decides.
func (m *RateLimitMiddleware) Allow(ctx context.Context, key string) (bool, error) {
	windowMs := m.window.Milliseconds()
	slot := m.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", m.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, m.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(m.limit), nil
}

// readOnly requests are served when the limiter is down; writes are refused
func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Limit returns a gin.HandlerFunc enforcing the quota
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}
		allowed, err := m.Allow(c.Request.Context(), key)
		if err != nil {
			m.logger.WithFields(map[string]interface{}{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Errorf("Rate limiter unavailable: %v", err)
			allowed = readOnly(c.Request.Method)
		}
		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", fmt.Sprintf("%d", int(m.window.Seconds())))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.APIResponse{
			Status:  "error",
			Code:    http.StatusTooManyRequests,
			Message: "Too many requests",
			Error: &models.APIError{
				Type:    models.ErrorTypeRateLimit,
				Details: fmt.Sprintf("limit of %d requests per minute exceeded", m.limit),
			},
		})
	}
}
