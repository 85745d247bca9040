package indicator

import (
	"testing"

	"MarketLens/internal/domain/models"
)

func candlesFromCloses(closes []float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Timestamp: int64(1700000000 + i*86400),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return candles
}

func TestDivergenceInsufficientHistory(t *testing.T) {
	closes := make([]float64, 19)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	d := DetectDivergence(candlesFromCloses(closes))
	if d.Detected {
		t.Errorf("expected no divergence for short series, got %+v", d)
	}
}

func TestBullishDivergence(t *testing.T) {
	// Prior span collapses monotonically (RSI 0); the recent span drifts
	// slightly lower at the endpoints but its RSI window captures the
	// rebound, so momentum disagrees with price.
	closes := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		closes = append(closes, 100-2*float64(i))
	}
	closes = append(closes, 80, 81, 80.5, 81.5, 80.8, 81.2, 80.6, 81.0, 80.2, 79.9)

	d := DetectDivergence(candlesFromCloses(closes))
	if !d.Detected || d.Type != "bullish" {
		t.Fatalf("expected bullish divergence, got %+v", d)
	}
	if d.Strength != 75 {
		t.Errorf("strength = %d, want 75", d.Strength)
	}
}

func TestBearishDivergence(t *testing.T) {
	closes := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		closes = append(closes, 100+2*float64(i))
	}
	closes = append(closes, 120, 119, 119.5, 118.5, 119.2, 118.8, 119.4, 119.0, 119.8, 120.1)

	d := DetectDivergence(candlesFromCloses(closes))
	if !d.Detected || d.Type != "bearish" {
		t.Fatalf("expected bearish divergence, got %+v", d)
	}
}

func TestNoDivergenceOnFlatSeries(t *testing.T) {
	// No price direction at the endpoints means no divergence to report.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	d := DetectDivergence(candlesFromCloses(closes))
	if d.Detected {
		t.Errorf("expected no divergence on flat series, got %+v", d)
	}
}
