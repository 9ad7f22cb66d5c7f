// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/launchkit/launchkit/internal/ratelimit"
)

// RateLimitMiddleware applies an in-memory limiter to an endpoint class,
// keyed by client IP.
func RateLimitMiddleware(limiter *ratelimit.MemoryLimiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.ClientIP(r)
			allowed, info := limiter.Allow(clientIP)

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))

			if !allowed {
				log.Printf("[RateLimit] Blocked %s request from %s (banned=%v)", name, clientIP, info.Banned)

				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", info.RetryAfter.Seconds()))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many attempts. Please try again later.",
					"retryAfter": int(info.RetryAfter.Seconds()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
