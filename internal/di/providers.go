package di

import (
	"net"
	"strconv"

	"MarketLens/internal/calendar"
	"MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/handler/api"
	icache "MarketLens/internal/service/cache"
	"MarketLens/internal/service/finnhub"
	"MarketLens/internal/usecase"
	pkgcache "MarketLens/pkg/cache"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	applogger "MarketLens/pkg/logger"
	"MarketLens/pkg/metrics"
	"MarketLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCalendar builds the trading calendar from config, falling back to
// the built-in NYSE table when none is configured.
func ProvideCalendar(cfg *config.Config) (*calendar.Calendar, error) {
	holidays := cfg.Calendar.Holidays
	if len(holidays) == 0 {
		holidays = calendar.DefaultHolidays
	}
	return calendar.New(cfg.Calendar.Timezone, holidays)
}

// ProvideCacheStore creates the Redis-backed store. A disabled Redis yields
// a nil store, which the cache layer treats as a permanent miss.
func ProvideCacheStore(cfg *config.Config) pkgcache.Service {
	if !cfg.Redis.Enabled {
		return nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		host, portStr = cfg.Redis.Addr, "6379"
	}
	port, _ := strconv.Atoi(portStr)
	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "marketlens"
	}
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPrefix(prefix),
	)
}

// ProvideTTLs maps config onto the cache TTL policy, keeping defaults for
// unset fields.
func ProvideTTLs(cfg *config.Config) icache.TTLConfig {
	ttl := icache.DefaultTTLs()
	if v := cfg.Cache.QuoteOpenTTL; v > 0 {
		ttl.QuoteOpen = v
	}
	if v := cfg.Cache.QuoteExtendedTTL; v > 0 {
		ttl.QuoteExtended = v
	}
	if v := cfg.Cache.QuoteClosedTTL; v > 0 {
		ttl.QuoteClosed = v
	}
	if v := cfg.Cache.IndicatorsTTL; v > 0 {
		ttl.Indicators = v
	}
	if v := cfg.Cache.AnalysisTTL; v > 0 {
		ttl.Analysis = v
	}
	return ttl
}

// ProvideAnalysisCache creates the session-aware cache layer.
func ProvideAnalysisCache(
	store pkgcache.Service,
	cal *calendar.Calendar,
	logger *applogger.Logger,
	m repository.Metrics,
	ttl icache.TTLConfig,
) repository.AnalysisCache {
	return icache.New(store, cal, logger, m, ttl)
}

// ProvideFinnhubClient creates the market data client.
func ProvideFinnhubClient(cfg *config.Config, logger *applogger.Logger) *finnhub.Client {
	opts := []finnhub.Option{}
	if cfg.Finnhub.BaseURL != "" {
		opts = append(opts, finnhub.WithBaseURL(cfg.Finnhub.BaseURL))
	}
	if cfg.Finnhub.VIXFallbackURL != "" {
		opts = append(opts, finnhub.WithVIXFallbackURL(cfg.Finnhub.VIXFallbackURL))
	}
	if len(cfg.Finnhub.FallbackPrices) > 0 {
		opts = append(opts, finnhub.WithFallbackPrices(cfg.Finnhub.FallbackPrices))
	}
	if cfg.Finnhub.Timeout > 0 {
		opts = append(opts, finnhub.WithTimeout(cfg.Finnhub.Timeout))
	}
	return finnhub.New(cfg.Finnhub.APIKey, logger, opts...)
}

// The client serves all three source roles.
func ProvideQuoteSource(c *finnhub.Client) domsvc.QuoteSource   { return c }
func ProvideCandleSource(c *finnhub.Client) domsvc.CandleSource { return c }
func ProvideVIXSource(c *finnhub.Client) domsvc.VIXSource       { return c }

// ProvideAnalyzer creates the analysis orchestrator.
func ProvideAnalyzer(
	quotes domsvc.QuoteSource,
	candles domsvc.CandleSource,
	vix domsvc.VIXSource,
	cache repository.AnalysisCache,
	cal *calendar.Calendar,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(quotes, candles, vix, cache, cal, m, logger)
}

// ProvideRefresher creates the watchlist cache warmer.
func ProvideRefresher(analyzer *usecase.Analyzer, cfg *config.Config, logger *applogger.Logger) *usecase.Refresher {
	rcfg := usecase.DefaultRefresherConfig()
	if len(cfg.Refresher.Symbols) > 0 {
		rcfg.Symbols = cfg.Refresher.Symbols
	}
	if cfg.Refresher.Schedule != "" {
		rcfg.Schedule = cfg.Refresher.Schedule
	}
	return usecase.NewRefresher(analyzer, rcfg, logger)
}

// ProvideApp assembles the HTTP handlers and the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	analyzer *usecase.Analyzer,
	refresher *usecase.Refresher,
	store pkgcache.Service,
) *server.App {
	handlers := []xhttp.Handler{
		api.NewStocksHandler(logger, analyzer),
		api.NewMarketHoursHandler(logger, analyzer),
		api.NewStreamHandler(logger, analyzer, cfg.Stream.Interval),
	}
	return server.New(cfg, logger, refresher, store, handlers...)
}
