package coverages

import (
	"context"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/contracts"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultRefreshCronSpec = "@every 5m"
	refreshTimeout         = 30 * time.Second
)

// RefreshWorker periodically reloads the coverage table.
type RefreshWorker struct {
	log             *zap.Logger
	cfg             *config.InternalConfig
	coverageUsecase contracts.CoverageUsecase
	cron            *cron.Cron
	runCtx          context.Context
	cancel          context.CancelFunc
}

func NewRefreshWorker(log *zap.Logger, cfg *config.InternalConfig, coverageUsecase contracts.CoverageUsecase) *RefreshWorker {
	return &RefreshWorker{log: log, cfg: cfg, coverageUsecase: coverageUsecase}
}

// Start schedules the reload with the configured cron spec. An invalid spec
// falls back to every five minutes.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	spec := w.cfg.Coverage.RefreshCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("coverages.RefreshWorker invalid cron spec, falling back to default",
			zap.String("spec", spec),
			zap.String("fallback", defaultRefreshCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultRefreshCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running reload to finish.
func (w *RefreshWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *RefreshWorker) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())

	if err := w.coverageUsecase.Refresh(ctx); err != nil {
		w.log.Warn("coverages.RefreshWorker reload failed, keeping current table",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}
