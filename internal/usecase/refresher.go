package usecase

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	xlogger "MarketLens/pkg/logger"
)

// RefresherConfig controls the watchlist cache warmer.
type RefresherConfig struct {
	Symbols  []string `yaml:"symbols"`
	Schedule string   `yaml:"schedule"`
	Timeout  time.Duration
}

// DefaultRefresherConfig warms the common watchlist once a minute, which
// keeps analyses inside their cache TTL during regular hours.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Symbols:  []string{"SOXL", "TSLA", "NVDA", "SPY"},
		Schedule: "@every 1m",
		Timeout:  30 * time.Second,
	}
}

// Refresher re-runs analyses for a fixed watchlist on a cron schedule so
// interactive requests hit warm cache entries. Symbols outside open or
// extended hours are skipped: closed-session values have long TTLs and do
// not need refreshing.
type Refresher struct {
	analyzer *Analyzer
	cfg      RefresherConfig
	cron     *cron.Cron
	logger   *xlogger.Logger
}

func NewRefresher(analyzer *Analyzer, cfg RefresherConfig, logger *xlogger.Logger) *Refresher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Refresher{
		analyzer: analyzer,
		cfg:      cfg,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start schedules the refresh job. It returns an error only for an invalid
// schedule expression.
func (r *Refresher) Start() error {
	if len(r.cfg.Symbols) == 0 {
		r.logger.Info("watchlist refresher disabled, no symbols configured")
		return nil
	}
	if _, err := r.cron.AddFunc(r.cfg.Schedule, r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("watchlist refresher started",
		xlogger.Strings("symbols", r.cfg.Symbols),
		xlogger.String("schedule", r.cfg.Schedule))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) refresh() {
	now := time.Now()
	if !r.analyzer.cal.IsOpen(now) && !r.analyzer.cal.IsExtendedHours(now) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()

	for _, symbol := range r.cfg.Symbols {
		if _, err := r.analyzer.Analyze(ctx, symbol); err != nil {
			r.logger.Warn("watchlist refresh failed",
				xlogger.String("symbol", symbol), xlogger.Error(err))
		}
	}
}
