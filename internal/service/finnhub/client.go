// Package finnhub adapts the Finnhub REST API into the domain's quote,
// candle, and volatility sources. The adapter never raises provider
// failures to its callers: every error path is absorbed into a clearly
// tagged synthetic substitute (degrade-not-fail). There is deliberately no
// retry here; a single failed call goes straight to the fallback.
package finnhub

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MarketLens/internal/domain/models"
	drepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"
)

const (
	defaultBaseURL = "https://finnhub.io/api/v1"
	vixSymbol      = "VIX"
)

// Client is a REST market-data source backed by Finnhub with a secondary
// chart provider for the volatility index.
type Client struct {
	apiKey          string
	baseURL         string
	vixFallbackURL  string
	http            *xhttp.Client
	logger          *xlogger.Logger
	fallbackPrices  map[string]float64
	defaultFallback float64
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the Finnhub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithVIXFallbackURL sets the secondary volatility provider endpoint.
func WithVIXFallbackURL(u string) Option {
	return func(c *Client) { c.vixFallbackURL = u }
}

// WithFallbackPrices overrides the simulated-quote price table.
func WithFallbackPrices(prices map[string]float64) Option {
	return func(c *Client) {
		if len(prices) > 0 {
			c.fallbackPrices = prices
		}
	}
}

// WithTimeout sets the HTTP timeout for provider calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = xhttp.NewClient(xhttp.WithTimeout(d)) }
}

// New creates a Finnhub market-data client.
func New(apiKey string, logger *xlogger.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:          apiKey,
		baseURL:         defaultBaseURL,
		http:            xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		logger:          logger,
		fallbackPrices:  defaultFallbackPrices(),
		defaultFallback: 150.0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// quoteResponse mirrors Finnhub's /quote payload. Fields may be null or zero
// when the market is closed.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// candleResponse mirrors Finnhub's /stock/candle column-oriented payload.
type candleResponse struct {
	Status  string    `json:"s"`
	Open    []float64 `json:"o"`
	High    []float64 `json:"h"`
	Low     []float64 `json:"l"`
	Close   []float64 `json:"c"`
	Volume  []float64 `json:"v"`
	Times   []int64   `json:"t"`
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (quoteResponse, error) {
	var qr quoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"token":  {c.apiKey},
		},
	}, &qr)
	if err != nil {
		return qr, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	return qr, nil
}

// GetQuote fetches a live quote, normalizing the provider's zero-price
// sentinel: a zero current price with a positive previous close means a
// quiescent pre/after-hours market, not a free stock.
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.Quote, models.Degradation) {
	qr, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		c.logger.Warn("quote fetch failed, serving fallback",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		return c.fallbackQuote(symbol), models.Degrade(models.DegradeProviderError, err)
	}

	current := qr.Current
	if current == 0 && qr.PreviousClose > 0 {
		current = qr.PreviousClose
	}
	if current == 0 {
		err := fmt.Errorf("no price data for %s (c=0, pc=%v)", symbol, qr.PreviousClose)
		c.logger.Warn("quote unusable, serving fallback",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		return c.fallbackQuote(symbol), models.Degrade(models.DegradeDataUnavailable, err)
	}

	return models.Quote{
		Symbol:        symbol,
		CurrentPrice:  current,
		Change:        qr.Change,
		PercentChange: qr.PercentChange,
		High:          orPrice(qr.High, current),
		Low:           orPrice(qr.Low, current),
		Open:          orPrice(qr.Open, current),
		PreviousClose: orPrice(qr.PreviousClose, current),
		Timestamp:     time.Now().Unix(),
	}, models.Degradation{}
}

// GetCandles fetches an OHLCV series. Any failure, including the provider's
// "no_data" status, yields a synthetic random-walk series for the requested
// span.
func (c *Client) GetCandles(ctx context.Context, symbol string, res drepo.Resolution, from, to time.Time) ([]models.Candle, models.Degradation) {
	var cr candleResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {string(res)},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
			"token":      {c.apiKey},
		},
	}, &cr)
	if err == nil && cr.Status != "ok" {
		err = fmt.Errorf("insufficient historical data for %s (status=%s)", symbol, cr.Status)
	}
	if err == nil && (len(cr.Times) == 0 || len(cr.Times) != len(cr.Close)) {
		err = fmt.Errorf("malformed candle payload for %s", symbol)
	}
	if err != nil {
		c.logger.Warn("candle fetch failed, serving synthetic series",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		days := int(to.Sub(from).Hours()/24 + 0.5)
		return syntheticCandles(c.basePrice(symbol), days, to), models.Degrade(models.DegradeProviderError, err)
	}

	candles := make([]models.Candle, len(cr.Times))
	for i := range cr.Times {
		candles[i] = models.Candle{
			Timestamp: cr.Times[i],
			Open:      cr.Open[i],
			High:      cr.High[i],
			Low:       cr.Low[i],
			Close:     cr.Close[i],
			Volume:    int64(cr.Volume[i]),
		}
	}
	return candles, models.Degradation{}
}

// GetVIX fetches the volatility index, falling back to the secondary chart
// provider and finally to a fixed calm-market reading.
func (c *Client) GetVIX(ctx context.Context) (models.VIXReading, models.Degradation) {
	qr, err := c.fetchQuote(ctx, vixSymbol)
	if err == nil && qr.Current > 0 {
		return models.ClassifyVIX(round2(qr.Current)), models.Degradation{}
	}
	if err == nil {
		err = fmt.Errorf("vix quote empty (c=%v)", qr.Current)
	}

	if c.vixFallbackURL != "" {
		if v, ferr := c.fetchVIXSecondary(ctx); ferr == nil {
			return models.ClassifyVIX(round2(v)), models.Degradation{}
		} else {
			c.logger.Warn("secondary vix provider failed", xlogger.Error(ferr))
		}
	}

	c.logger.Warn("vix unavailable, serving fixed reading", xlogger.Error(err))
	reading := models.ClassifyVIX(14.08)
	reading.Simulated = true
	return reading, models.Degrade(models.DegradeProviderError, err)
}

// chartResponse is the secondary provider's (Yahoo-style) chart payload,
// reduced to the close series.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

func (c *Client) fetchVIXSecondary(ctx context.Context) (float64, error) {
	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.vixFallbackURL,
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {"1d"},
		},
	}, &chart)
	if err != nil {
		return 0, fmt.Errorf("secondary vix: %w", err)
	}
	for _, r := range chart.Chart.Result {
		for _, q := range r.Indicators.Quote {
			for i := len(q.Close) - 1; i >= 0; i-- {
				if q.Close[i] != nil && *q.Close[i] > 0 {
					return *q.Close[i], nil
				}
			}
		}
	}
	return 0, fmt.Errorf("secondary vix: empty close series")
}

func orPrice(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

var (
	_ domsvc.QuoteSource  = (*Client)(nil)
	_ domsvc.CandleSource = (*Client)(nil)
	_ domsvc.VIXSource    = (*Client)(nil)
)
