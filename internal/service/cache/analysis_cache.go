// Package cache is the market-calendar-aware cache layer for computed
// analysis values. The backing store is optional: when it is unreachable
// every read is a miss and every write a no-op, and the pipeline proceeds
// unblocked (availability over consistency).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketLens/internal/calendar"
	"MarketLens/internal/domain/models"
	drepo "MarketLens/internal/domain/repository"
	pkgcache "MarketLens/pkg/cache"
	xlogger "MarketLens/pkg/logger"
)

// TTLConfig holds the per-kind expirations. Quote TTLs track the market
// session because the spot price only moves while someone is trading;
// indicators are slower-moving and more expensive, so they keep a longer
// fixed TTL than the composite analysis.
type TTLConfig struct {
	QuoteOpen     time.Duration
	QuoteExtended time.Duration
	QuoteClosed   time.Duration
	Indicators    time.Duration
	Analysis      time.Duration
}

// DefaultTTLs returns the standard TTL policy.
func DefaultTTLs() TTLConfig {
	return TTLConfig{
		QuoteOpen:     5 * time.Second,
		QuoteExtended: 30 * time.Second,
		QuoteClosed:   300 * time.Second,
		Indicators:    300 * time.Second,
		Analysis:      60 * time.Second,
	}
}

// AnalysisCache maps (symbol, kind) onto the last computed value.
type AnalysisCache struct {
	store   pkgcache.Service
	cal     *calendar.Calendar
	logger  *xlogger.Logger
	metrics drepo.Metrics
	ttl     TTLConfig
	now     func() time.Time
}

// New creates the cache layer. A nil store is allowed and behaves as a
// permanent miss.
func New(store pkgcache.Service, cal *calendar.Calendar, logger *xlogger.Logger, metrics drepo.Metrics, ttl TTLConfig) *AnalysisCache {
	return &AnalysisCache{
		store:   store,
		cal:     cal,
		logger:  logger,
		metrics: metrics,
		ttl:     ttl,
		now:     time.Now,
	}
}

func quoteKey(symbol string) string      { return "quote:" + symbol }
func indicatorsKey(symbol string) string { return "indicators:" + symbol }
func analysisKey(symbol string) string   { return "analysis:" + symbol }

// quoteTTL selects the quote expiration from the current market session.
func (c *AnalysisCache) quoteTTL() time.Duration {
	now := c.now()
	switch {
	case c.cal.IsOpen(now):
		return c.ttl.QuoteOpen
	case c.cal.IsExtendedHours(now):
		return c.ttl.QuoteExtended
	default:
		return c.ttl.QuoteClosed
	}
}

func (c *AnalysisCache) get(ctx context.Context, kind, key string, dest interface{}) bool {
	if c.store == nil {
		return false
	}
	err := c.store.Get(ctx, key, dest)
	if err == nil {
		c.metrics.RecordCache(kind, true)
		return true
	}
	if !errors.Is(err, pkgcache.ErrCacheMiss) {
		c.logger.Debug("cache read failed", xlogger.String("key", key), xlogger.Error(err))
	}
	c.metrics.RecordCache(kind, false)
	return false
}

func (c *AnalysisCache) put(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.logger.Debug("cache write failed", xlogger.String("key", key), xlogger.Error(err))
	}
}

func (c *AnalysisCache) GetQuote(ctx context.Context, symbol string) (models.Quote, bool) {
	var q models.Quote
	ok := c.get(ctx, "quote", quoteKey(symbol), &q)
	return q, ok
}

func (c *AnalysisCache) PutQuote(ctx context.Context, symbol string, q models.Quote) {
	c.put(ctx, quoteKey(symbol), q, c.quoteTTL())
}

func (c *AnalysisCache) GetIndicators(ctx context.Context, symbol string) (models.IndicatorSet, bool) {
	var ind models.IndicatorSet
	ok := c.get(ctx, "indicators", indicatorsKey(symbol), &ind)
	return ind, ok
}

func (c *AnalysisCache) PutIndicators(ctx context.Context, symbol string, ind models.IndicatorSet) {
	c.put(ctx, indicatorsKey(symbol), ind, c.ttl.Indicators)
}

func (c *AnalysisCache) GetAnalysis(ctx context.Context, symbol string) (models.Analysis, bool) {
	var a models.Analysis
	ok := c.get(ctx, "analysis", analysisKey(symbol), &a)
	return a, ok
}

func (c *AnalysisCache) PutAnalysis(ctx context.Context, symbol string, a models.Analysis) {
	c.put(ctx, analysisKey(symbol), a, c.ttl.Analysis)
}

// InvalidateSymbol removes every cached kind for the symbol.
func (c *AnalysisCache) InvalidateSymbol(ctx context.Context, symbol string) {
	if c.store == nil {
		return
	}
	err := c.store.Delete(ctx, quoteKey(symbol), indicatorsKey(symbol), analysisKey(symbol))
	if err != nil {
		c.logger.Debug("cache invalidate failed", xlogger.String("symbol", symbol), xlogger.Error(err))
	}
}

// Stats reports the backing store's state; an unreachable store degrades to
// connected=false instead of an error.
func (c *AnalysisCache) Stats(ctx context.Context) models.CacheStats {
	if c.store == nil {
		return models.CacheStats{Connected: false}
	}
	s, err := c.store.Stats(ctx)
	if err != nil {
		return models.CacheStats{Connected: false, Error: fmt.Sprintf("%v", err)}
	}
	return models.CacheStats{Connected: true, Keys: s.Keys, Hits: s.Hits, Misses: s.Misses}
}

var _ drepo.AnalysisCache = (*AnalysisCache)(nil)
