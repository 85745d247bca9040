package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketLens/internal/calendar"
	"MarketLens/internal/domain/models"
	drepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/indicator"
	"MarketLens/internal/recommend"
	xlogger "MarketLens/pkg/logger"
	"MarketLens/pkg/util"
)

// historyDays is the candle span fetched for indicator computation.
const historyDays = 180

// Analyzer composes the quote source, indicator engine, volatility reading,
// and scorer into complete per-symbol analyses. It is the only object the
// HTTP layer calls into. Calls are stateless; concurrent analyses share
// nothing but the optional cache.
type Analyzer struct {
	quotes  domsvc.QuoteSource
	candles domsvc.CandleSource
	vix     domsvc.VIXSource
	cache   drepo.AnalysisCache
	cal     *calendar.Calendar
	metrics drepo.Metrics
	logger  *xlogger.Logger
	now     func() time.Time
}

// NewAnalyzer creates the orchestrator.
func NewAnalyzer(
	quotes domsvc.QuoteSource,
	candles domsvc.CandleSource,
	vix domsvc.VIXSource,
	cache drepo.AnalysisCache,
	cal *calendar.Calendar,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
) *Analyzer {
	return &Analyzer{
		quotes:  quotes,
		candles: candles,
		vix:     vix,
		cache:   cache,
		cal:     cal,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (a *Analyzer) recordOutcome(endpoint string, d models.Degradation) {
	outcome := "ok"
	if d.IsDegraded() {
		outcome = string(d.Reason)
		a.metrics.RecordFallback(endpoint)
	}
	a.metrics.RecordProviderRequest(endpoint, outcome)
}

// GetStockQuote returns the current quote for a symbol, from cache when
// fresh. Degraded provider data arrives flagged simulated, never as an
// error.
func (a *Analyzer) GetStockQuote(ctx context.Context, symbol string) models.Quote {
	symbol = strings.ToUpper(symbol)
	if q, ok := a.cache.GetQuote(ctx, symbol); ok {
		return q
	}

	start := a.now()
	q, deg := a.quotes.GetQuote(ctx, symbol)
	a.recordOutcome("quote", deg)
	a.metrics.RecordLatency("quote", a.now().Sub(start).Seconds())

	q.MarkDegraded(deg)
	a.metrics.RecordLastPrice(symbol, q.CurrentPrice)
	a.cache.PutQuote(ctx, symbol, q)
	return q
}

// GetTechnicalIndicators computes the indicator set over a 180-day daily
// series. Fewer than 20 candles yields the neutral default, flagged
// simulated, instead of invoking the engine.
func (a *Analyzer) GetTechnicalIndicators(ctx context.Context, symbol string) models.IndicatorSet {
	symbol = strings.ToUpper(symbol)
	if ind, ok := a.cache.GetIndicators(ctx, symbol); ok {
		return ind
	}

	end := a.now()
	start := end.AddDate(0, 0, -historyDays)
	candles, deg := a.candles.GetCandles(ctx, symbol, drepo.ResDay, start, end)
	a.recordOutcome("candles", deg)

	var ind models.IndicatorSet
	if len(candles) < indicator.MinCandles {
		a.logger.Warn("insufficient history, serving neutral indicators",
			xlogger.String("symbol", symbol), xlogger.Int("candles", len(candles)))
		a.metrics.RecordFallback("indicators")
		ind = models.NeutralIndicators()
	} else {
		t0 := a.now()
		ind = indicator.Compute(candles)
		a.metrics.RecordLatency("indicators", a.now().Sub(t0).Seconds())
		if deg.IsDegraded() {
			ind.Simulated = true
		}
	}

	a.cache.PutIndicators(ctx, symbol, ind)
	return ind
}

// GetVIX returns the volatility index reading.
func (a *Analyzer) GetVIX(ctx context.Context) models.VIXReading {
	v, deg := a.vix.GetVIX(ctx)
	a.recordOutcome("vix", deg)
	return v
}

// GetOHLCV fetches a candle series for charting. The degradation tells the
// caller whether the series is synthetic. A zero end anchors the range at
// the current time.
func (a *Analyzer) GetOHLCV(ctx context.Context, symbol string, res drepo.Resolution, days int, end time.Time) ([]models.Candle, models.Degradation) {
	symbol = strings.ToUpper(symbol)
	if end.IsZero() {
		end = a.now()
	}
	start, end := util.AlignFromTo(end.AddDate(0, 0, -days), end, string(res))
	candles, deg := a.candles.GetCandles(ctx, symbol, res, start, end)
	a.recordOutcome("candles", deg)
	return candles, deg
}

// Analyze produces the complete analysis for one symbol: quote, indicators,
// volatility, and the scored recommendation. Failures that escape the
// degrade-not-fail absorptions below are wrapped into a single descriptive
// error; the method never partially returns.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (models.Analysis, error) {
	symbol = strings.ToUpper(symbol)
	if cached, ok := a.cache.GetAnalysis(ctx, symbol); ok {
		return cached, nil
	}

	start := a.now()
	quote := a.GetStockQuote(ctx, symbol)
	indicators := a.GetTechnicalIndicators(ctx, symbol)
	vix := a.GetVIX(ctx)
	if err := ctx.Err(); err != nil {
		return models.Analysis{}, fmt.Errorf("complete analysis for %s: %w", symbol, err)
	}

	analysis := models.Analysis{
		Symbol:         symbol,
		Quote:          quote,
		Indicators:     indicators,
		VIX:            vix,
		Recommendation: recommend.Score(indicators, vix),
		Timestamp:      a.now().UTC(),
	}
	a.metrics.RecordLatency("analysis", a.now().Sub(start).Seconds())

	a.cache.PutAnalysis(ctx, symbol, analysis)
	return analysis, nil
}

// GetMarketStatus derives the current session state from the calendar.
// A boundary-resolution failure here is a configuration defect and
// propagates.
func (a *Analyzer) GetMarketStatus() (models.MarketSession, error) {
	return a.cal.SessionAt(a.now())
}

// GetTradingWindow summarizes the current session.
func (a *Analyzer) GetTradingWindow() models.TradingWindow {
	return a.cal.TradingWindow(a.now())
}

// CanTradeNow reports whether an order of the given kind may trade at this
// instant.
func (a *Analyzer) CanTradeNow(kind models.OrderKind) bool {
	return a.cal.CanTrade(kind, a.now())
}

// InvalidateSymbol drops all cached values for a symbol.
func (a *Analyzer) InvalidateSymbol(ctx context.Context, symbol string) {
	a.cache.InvalidateSymbol(ctx, strings.ToUpper(symbol))
}

// CacheStats reports the cache layer's health.
func (a *Analyzer) CacheStats(ctx context.Context) models.CacheStats {
	return a.cache.Stats(ctx)
}
