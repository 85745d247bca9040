package finnhub

import (
	"math"
	"math/rand"
	"time"

	"MarketLens/internal/domain/models"
)

// defaultFallbackPrices anchors simulated quotes for well-known symbols so a
// degraded system still looks plausible.
func defaultFallbackPrices() map[string]float64 {
	return map[string]float64{
		"SOXL":     43.12,
		"TSLA":     253.20,
		"NVDA":     492.25,
		"SPY":      4128.32,
		"BTC/USDT": 96500.0,
	}
}

func (c *Client) basePrice(symbol string) float64 {
	if p, ok := c.fallbackPrices[symbol]; ok {
		return p
	}
	return c.defaultFallback
}

// fallbackQuote builds a flat synthetic quote from the price table. The
// caller stamps the degradation onto it.
func (c *Client) fallbackQuote(symbol string) models.Quote {
	price := c.basePrice(symbol)
	return models.Quote{
		Symbol:        symbol,
		CurrentPrice:  price,
		High:          price,
		Low:           price,
		Open:          price,
		PreviousClose: price,
		Timestamp:     time.Now().Unix(),
		Simulated:     true,
		MarketStatus:  "closed",
	}
}

// syntheticCandles produces a daily random-walk series of the requested
// length anchored at base, ending at `end`. Structurally valid: ascending
// unique timestamps, high >= max(open, close), low <= min(open, close).
func syntheticCandles(base float64, days int, end time.Time) []models.Candle {
	if days < 1 {
		days = 1
	}
	candles := make([]models.Candle, 0, days)
	price := base
	endUnix := end.Unix()
	for i := 0; i < days; i++ {
		t := endUnix - int64(days-i)*86400
		open := price + rand.Float64()*4 - 2
		close := open + rand.Float64()*6 - 3
		high := math.Max(open, close) + rand.Float64()
		low := math.Min(open, close) - rand.Float64()
		candles = append(candles, models.Candle{
			Timestamp: t,
			Open:      round2(open),
			High:      round2(high),
			Low:       round2(low),
			Close:     round2(close),
			Volume:    int64(100000 + rand.Intn(900001)),
		})
		price = close
	}
	return candles
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
