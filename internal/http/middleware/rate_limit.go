package middleware

import (
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ecovolt/portal/internal/http/response"
	"github.com/ecovolt/portal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window limit keyed by client IP, backed
// by Redis so the limit holds across replicas. Intended for the
// credential endpoints (login, register).
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewRateLimiter(client *redis.Client, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:   client,
		requests: requests,
		window:   window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Hash the key so raw client IPs never land in Redis
		sum := sha256.Sum256([]byte(clientIP(r)))
		key := fmt.Sprintf("ratelimit:%s:%x", r.URL.Path, sum)

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			// Redis being down must not lock everyone out
			logger.WarnContext(r.Context(), "Rate limit check failed, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.requests) {
			response.RateLimit(w, "Too many attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
