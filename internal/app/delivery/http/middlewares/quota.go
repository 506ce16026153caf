package middlewares

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"roster-service/internal/app/services/shared/ratelimiter"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// ExportQuota limits how many exports one client may store per hour. It is
// a no-op without Redis or when EXPORT_QUOTA_PER_HOUR is not positive.
func (m *Middlewares) ExportQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.QuotaLimiter == nil || m.InternalConfig.Export.QuotaPerHour <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		result, err := m.QuotaLimiter.Apply(ctx, ratelimiter.QuotaInput{
			Group:    constvars.QuotaGroupExport,
			ClientID: clientIP(r),
			Window:   time.Hour,
			MaxQuota: m.InternalConfig.Export.QuotaPerHour,
		})
		if err != nil {
			// Redis trouble must not block exports.
			m.Log.Warn("Middlewares.ExportQuota skipped",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(retryAfter))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrExportQuotaExceeded(retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}
