//go:build wireinject
// +build wireinject

package di

import (
	"MarketLens/pkg/config"
	"MarketLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideCalendar,

		// Cache layer
		ProvideCacheStore,
		ProvideTTLs,
		ProvideAnalysisCache,

		// Market data sources
		ProvideFinnhubClient,
		ProvideQuoteSource,
		ProvideCandleSource,
		ProvideVIXSource,

		// Use cases
		ProvideAnalyzer,
		ProvideRefresher,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
