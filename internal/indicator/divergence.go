package indicator

import "MarketLens/internal/domain/models"

// divergenceStrength is a coarse confidence constant, not a continuous
// measure.
const divergenceStrength = 75

// DetectDivergence compares the direction of the last 10 closes against the
// prior 10 (endpoint comparison, not slope fit) and cross-checks it against
// a short-window RSI and the MACD-histogram trend over the same spans.
// Bullish divergence is checked first; at most one kind is reported.
func DetectDivergence(candles []models.Candle) models.Divergence {
	if len(candles) < 20 {
		return models.Divergence{}
	}
	closes := models.Closes(candles)
	n := len(closes)

	recent := closes[n-10:]
	priceUp := recent[len(recent)-1] > recent[0]
	priceDown := recent[len(recent)-1] < recent[0]

	recentRSI := RSI(closes[n-20:], 14)
	prior := closes[:20]
	if n >= 30 {
		prior = closes[n-30 : n-10]
	}
	previousRSI := RSI(prior, 14)

	window := closes
	if n > 30 {
		window = closes[n-30:]
	}
	_, _, hist := MACDSeries(window, 12, 26, 9)
	recentHist := hist[len(hist)-10:]
	histUp := recentHist[len(recentHist)-1] > recentHist[0]
	histDown := recentHist[len(recentHist)-1] < recentHist[0]

	if priceDown && (recentRSI > previousRSI || histUp) {
		return models.Divergence{Detected: true, Type: "bullish", Strength: divergenceStrength}
	}
	if priceUp && (recentRSI < previousRSI || histDown) {
		return models.Divergence{Detected: true, Type: "bearish", Strength: divergenceStrength}
	}
	return models.Divergence{}
}
