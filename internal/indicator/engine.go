// Package indicator derives technical indicators from immutable candle
// series. All computations are pure functions: the same series always yields
// bit-identical output, and each sub-calculation independently guards
// against insufficient history instead of failing.
package indicator

import "MarketLens/internal/domain/models"

// MinCandles is the shortest series the engine accepts. Callers with fewer
// candles must substitute models.NeutralIndicators instead.
const MinCandles = 20

const (
	rsiPeriod    = 14
	volumeWindow = 20
	smaShort     = 20
	smaLong      = 50

	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// Compute derives the full indicator set from a candle series. Series
// shorter than MinCandles yield the neutral default, flagged simulated.
func Compute(candles []models.Candle) models.IndicatorSet {
	if len(candles) < MinCandles {
		return models.NeutralIndicators()
	}
	closes := models.Closes(candles)

	line, sig, hist := MACDSeries(closes, macdFast, macdSlow, macdSignal)
	lastHist := hist[len(hist)-1]

	return models.IndicatorSet{
		RSI: round2(RSI(closes, rsiPeriod)),
		MACD: models.MACD{
			Value:      round4(line[len(line)-1]),
			Signal:     round4(sig[len(sig)-1]),
			Histogram:  round4(lastHist),
			IsPositive: lastHist > 0,
		},
		Volume:            volumeStats(candles),
		MovingAverages:    movingAverages(closes),
		SupportResistance: SupportResistance(candles),
		Divergence:        DetectDivergence(candles),
		Fibonacci:         FibonacciLevels(candles),
	}
}

// volumeStats compares the last volume against its rolling mean. A zero
// mean (halted or synthetic series) defaults the ratio to the neutral 1.0.
func volumeStats(candles []models.Candle) models.VolumeStats {
	recent := candles
	if len(recent) > volumeWindow {
		recent = recent[len(recent)-volumeWindow:]
	}
	var sum int64
	for _, c := range recent {
		sum += c.Volume
	}
	// Ratio uses the exact mean; only the reported average is truncated.
	avg := float64(sum) / float64(len(recent))
	current := candles[len(candles)-1].Volume

	ratio := 1.0
	if avg > 0 {
		ratio = round2(float64(current) / avg)
	}
	return models.VolumeStats{Current: current, Average: int64(avg), Ratio: ratio}
}

// movingAverages computes the 20/50 simple means over the trailing closes.
// With fewer than 50 closes the long mean uses what is available. Ties
// resolve to bearish.
func movingAverages(closes []float64) models.MovingAverages {
	sma20 := mean(tail(closes, smaShort))
	sma50 := mean(tail(closes, smaLong))

	trend := "bearish"
	if sma20 > sma50 {
		trend = "bullish"
	}
	return models.MovingAverages{SMA20: round2(sma20), SMA50: round2(sma50), Trend: trend}
}

func tail(xs []float64, n int) []float64 {
	if len(xs) > n {
		return xs[len(xs)-n:]
	}
	return xs
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
