package repository

import (
	"context"

	"MarketLens/internal/domain/models"
)

// AnalysisCache stores time-bounded copies of computed values keyed by
// (symbol, kind). Implementations must degrade to misses/no-ops when the
// backing store is unreachable; they never return that failure to callers.
type AnalysisCache interface {
	GetQuote(ctx context.Context, symbol string) (models.Quote, bool)
	PutQuote(ctx context.Context, symbol string, q models.Quote)
	GetIndicators(ctx context.Context, symbol string) (models.IndicatorSet, bool)
	PutIndicators(ctx context.Context, symbol string, ind models.IndicatorSet)
	GetAnalysis(ctx context.Context, symbol string) (models.Analysis, bool)
	PutAnalysis(ctx context.Context, symbol string, a models.Analysis)
	InvalidateSymbol(ctx context.Context, symbol string)
	Stats(ctx context.Context) models.CacheStats
}

// Metrics records operational counters for the analysis pipeline.
type Metrics interface {
	RecordProviderRequest(endpoint, outcome string)
	RecordFallback(kind string)
	RecordCache(kind string, hit bool)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
