package ratelimiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roster-service/internal/app/contracts"
	"roster-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// QuotaLimiter counts requests per client in fixed windows stored in Redis,
// so the quota holds across every replica of the service.
type QuotaLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewQuotaLimiter(redis contracts.RedisRepository, log *zap.Logger) *QuotaLimiter {
	return &QuotaLimiter{redis: redis, log: log, now: time.Now}
}

type QuotaInput struct {
	// Group namespaces the counter, e.g. "export"
	Group    string
	ClientID string
	Window   time.Duration
	MaxQuota int
}

type QuotaResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Apply records one request of in.ClientID. A non-positive MaxQuota disables
// the quota.
func (l *QuotaLimiter) Apply(ctx context.Context, in QuotaInput) (*QuotaResult, error) {
	if in.MaxQuota <= 0 {
		return &QuotaResult{Allowed: true}, nil
	}
	window := in.Window
	if window <= 0 {
		window = time.Minute
	}

	now := l.now().UTC()
	windowID := now.UnixNano() / int64(window)
	key := fmt.Sprintf("%s:%s:%s:%d",
		constvars.RedisKeyQuotaPrefix,
		strings.ToLower(strings.TrimSpace(in.Group)),
		strings.TrimSpace(in.ClientID),
		windowID,
	)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("QuotaLimiter.Apply increment failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	if count > in.MaxQuota {
		nextWindow := time.Unix(0, (windowID+1)*int64(window))
		return &QuotaResult{Allowed: false, RetryAfter: nextWindow.Sub(now)}, nil
	}
	return &QuotaResult{Allowed: true}, nil
}
