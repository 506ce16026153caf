package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles plan uploads per client IP. A client that exceeds
// its budget is blocked for blockTime.
type RateLimiter struct {
	log       *zap.Logger
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(logger *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &RateLimiter{
		log:       logger,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !l.allow(ip) {
			utils.BuildErrorResponse(l.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if blockedUntil, found := l.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(l.blocked, ip)
	}

	limiter, exists := l.limiters[ip]
	if !exists {
		// requests per `per`, bursting up to requests
		limiter = rate.NewLimiter(rate.Every(l.per/time.Duration(l.requests)), l.requests)
		l.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		l.blocked[ip] = now.Add(l.blockTime)
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
