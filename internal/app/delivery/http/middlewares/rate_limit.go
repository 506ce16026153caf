package middlewares

import (
	"net/http"
	"time"

	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit caps every client at APP_MAX_REQUEST requests per second.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.rateLimitExceeded),
	)
}

// UploadRateLimiter builds the per-IP limiter guarding the plan endpoints.
func (m *Middlewares) UploadRateLimiter() *RateLimiter {
	return NewRateLimiter(
		m.Log,
		m.InternalConfig.App.UploadRequestsPerMinute,
		time.Minute,
		time.Duration(m.InternalConfig.App.UploadBlockTimeInSeconds)*time.Second,
	)
}

func (m *Middlewares) rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
}
