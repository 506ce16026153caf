package middlewares

import (
	"roster-service/internal/app/config"
	"roster-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	// QuotaLimiter is nil when Redis is disabled
	QuotaLimiter *ratelimiter.QuotaLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, quotaLimiter *ratelimiter.QuotaLimiter) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		QuotaLimiter:   quotaLimiter,
	}
}
