package service

import (
	"context"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/internal/domain/repository"
)

// QuoteSource fetches a point-in-time quote for a symbol. Implementations
// never fail: on any provider error they return a synthetic quote and a
// non-zero Degradation instead.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (models.Quote, models.Degradation)
}

// CandleSource fetches a historical OHLCV series. Same degrade-not-fail
// policy as QuoteSource: a failed fetch yields a synthetic random-walk
// series of the requested span.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol string, res repository.Resolution, from, to time.Time) ([]models.Candle, models.Degradation)
}

// VIXSource fetches a volatility index reading, trying a secondary provider
// before settling on a fixed last-resort value.
type VIXSource interface {
	GetVIX(ctx context.Context) (models.VIXReading, models.Degradation)
}
