package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/Chrissankov/gymshark-ecommerce/core/response"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Limiter is the rate limiting implementation to use
	Limiter ratelimiter.RateLimiter
	// KeyExtractor defines how to extract the rate limiting key from requests (default: remote host)
	KeyExtractor func(r *http.Request) string
	// SetHeaders determines whether to include rate limit information in response headers
	SetHeaders bool
}

// RateLimit answers 429 Too Many Requests once the caller's bucket is empty.
// Panics if no limiter is provided.
//
//	limiter, _ := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	r.With(middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter})).Post("/login", login)
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = remoteHost
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.Allow(r.Context(), cfg.KeyExtractor(r))
			if err != nil {
				response.Error(w, response.ErrInternalServerError.WithError(err))
				return
			}

			if cfg.SetHeaders {
				setRateLimitHeaders(w, result)
			}

			if !result.Allowed() {
				httpErr := response.ErrTooManyRequests
				if retry := result.RetryAfter(); retry > 0 {
					httpErr = httpErr.WithDetails(map[string]any{
						"retry_after": int(retry.Seconds()),
					})
				}
				response.Error(w, httpErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, result *ratelimiter.Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	// Denied results carry a negative remaining count.
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed() && result.RetryAfter() > 0 {
		h.Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())))
	}
}

func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
