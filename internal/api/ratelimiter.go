package api

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type rateLimiter interface {
	Allow() bool
}

// WithRateLimit configures a token bucket limiter. A non-positive rate or
// burst disables rate limiting entirely.
func WithRateLimit(ratePerSecond float64, burst int) RouterOption {
	return func(cfg *routerConfig) {
		if ratePerSecond <= 0 || burst <= 0 {
			cfg.rateLimiter = nil
			return
		}
		cfg.rateLimiter = newTokenBucketLimiter(ratePerSecond, burst)
	}
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// rateLimitMiddleware expects to run inside requestIDMiddleware so rejected
// lookups can be correlated by the caller.
func rateLimitMiddleware(limiter rateLimiter, logger *zap.Logger, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		requestID := requestIDFromContext(r.Context())
		logger.Warn("settings lookup rate limited",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
		)
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:     "Too many requests",
			Details:   "rate limit exceeded, please retry shortly",
			RequestID: requestID,
		})
	})
}
