package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contacthub/contacthub-backend/internal/response"
	"github.com/contacthub/contacthub-backend/pkg/clientip"
)

const (
	rateLimitWindow      = 60 * time.Second
	rateLimitMaxRequests = 60
	rateLimitKeyPrefix   = "ratelimit:"
	blockedIPKeyPrefix   = "blocked_ip:"
	// blockedIPDuration is how long an IP stays blocked after exceeding
	// the window limit.
	blockedIPDuration = time.Hour
)

// RateLimit is a Redis fixed-window per-IP limiter with temporary IP
// blocking. When Redis is unreachable the request is allowed (fail open).
func RateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientip.FromRequest(r)
			ctx := r.Context()

			blockedKey := blockedIPKeyPrefix + ip
			if blocked, err := rdb.Exists(ctx, blockedKey).Result(); err == nil && blocked > 0 {
				response.Error(w,http.StatusTooManyRequests,
					"Your IP has been temporarily blocked due to excessive requests. Please try again later.")
				return
			}

			countKey := rateLimitKeyPrefix + ip
			count, err := rdb.Incr(ctx, countKey).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, countKey, rateLimitWindow)
			}

			if count > rateLimitMaxRequests {
				rdb.Set(ctx, blockedKey, "1", blockedIPDuration)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rateLimitWindow.Seconds())))
				response.Error(w,http.StatusTooManyRequests,
					"Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(rateLimitMaxRequests-count, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(rateLimitWindow).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}
