// Package recommend turns an indicator set plus a volatility reading into a
// weighted buy/sell/hold recommendation. Score is a deterministic pure
// function of its inputs.
package recommend

import (
	"fmt"

	"MarketLens/internal/domain/models"
)

// vixVetoLevel is the volatility reading above which the recommendation is
// forced to HOLD regardless of the factor sum.
const vixVetoLevel = 30.0

// Score combines the eight weighted factors into a normalized 0-100 score
// and an action label. The breakdown lists every factor in table order, even
// with a zero contribution, so normalized_score == clamp(50 + sum) always
// holds for the returned value (before the volatility veto).
func Score(ind models.IndicatorSet, vix models.VIXReading) models.Recommendation {
	var (
		score     int
		signals   []string
		breakdown []models.FactorContribution
	)

	add := func(label string, value float64, contribution, weight int) {
		breakdown = append(breakdown, models.FactorContribution{
			Label:        label,
			Value:        value,
			Contribution: contribution,
			Weight:       weight,
		})
	}

	// RSI (weight 25)
	rsiContribution := 0
	switch {
	case ind.RSI < 30:
		score += 2
		rsiContribution = 25
		signals = append(signals, "RSI oversold (bullish)")
	case ind.RSI < 50:
		score++
		rsiContribution = 12
		signals = append(signals, "RSI below neutral")
	case ind.RSI > 70:
		score -= 2
		rsiContribution = -25
		signals = append(signals, "RSI overbought (bearish)")
	case ind.RSI > 50:
		score--
		rsiContribution = -12
		signals = append(signals, "RSI above neutral")
	}
	add("RSI", ind.RSI, rsiContribution, 25)

	// MACD (weight 20)
	macdContribution := -10
	if ind.MACD.IsPositive {
		score += 2
		macdContribution = 20
		signals = append(signals, "MACD positive (bullish)")
	} else {
		score--
		signals = append(signals, "MACD negative (bearish)")
	}
	add("MACD", ind.MACD.Histogram, macdContribution, 20)

	// Moving-average trend (weight 30)
	maContribution := -15
	maValue := -1.0
	if ind.MovingAverages.Trend == "bullish" {
		score++
		maContribution = 30
		maValue = 1.0
		signals = append(signals, "MA trend bullish")
	} else {
		score--
		signals = append(signals, "MA trend bearish")
	}
	add("Moving Averages", maValue, maContribution, 30)

	// Volume ratio (weight 15)
	volumeContribution := 0
	switch {
	case ind.Volume.Ratio > 1.5:
		score++
		volumeContribution = 15
		signals = append(signals, "High volume (strong interest)")
	case ind.Volume.Ratio < 0.7:
		score--
		volumeContribution = -7
		signals = append(signals, "Low volume (weak interest)")
	}
	add("Volume", ind.Volume.Ratio, volumeContribution, 15)

	// Volatility index (weight 10)
	vixContribution := 0
	switch {
	case vix.Value > vixVetoLevel:
		score--
		vixContribution = -10
		signals = append(signals, "High VIX (market fear)")
	case vix.Value < 15:
		score++
		vixContribution = 10
		signals = append(signals, "Low VIX (market calm)")
	}
	add("VIX", vix.Value, vixContribution, 10)

	// Support/resistance (weight 10)
	srContribution := 0
	switch {
	case ind.SupportResistance.NearSupport:
		score++
		srContribution = 10
		signals = append(signals, "Price near support (bullish)")
	case ind.SupportResistance.NearResistance:
		score--
		srContribution = -5
		signals = append(signals, "Price near resistance (bearish)")
	}
	add("Support/Resistance", ind.SupportResistance.SupportDistancePct, srContribution, 10)

	// Divergence (weight 10)
	divContribution := 0
	if ind.Divergence.Detected {
		switch ind.Divergence.Type {
		case "bullish":
			score++
			divContribution = 10
			signals = append(signals, "Bullish divergence detected")
		case "bearish":
			score--
			divContribution = -10
			signals = append(signals, "Bearish divergence detected")
		}
	}
	add("Divergence", float64(ind.Divergence.Strength), divContribution, 10)

	// Fibonacci level (weight 10)
	fibContribution := 0
	fibValue := 0.0
	switch ind.Fibonacci.CurrentLevel {
	case "23.6", "38.2", "61.8":
		score++
		fibContribution = 10
		signals = append(signals, fmt.Sprintf("Price at Fibonacci %s%% level", ind.Fibonacci.CurrentLevel))
	}
	if lvl := ind.Fibonacci.CurrentLevel; lvl != "" {
		fibValue = fibLevelValue(lvl)
	}
	add("Fibonacci", fibValue, fibContribution, 10)

	sum := 0
	for _, b := range breakdown {
		sum += b.Contribution
	}
	normalized := clamp(50+sum, 0, 100)

	rec := models.Recommendation{
		Score:           score,
		NormalizedScore: normalized,
		Signals:         signals,
		Breakdown:       breakdown,
	}

	// Volatility veto: above the threshold the verdict is forced to HOLD no
	// matter what the factor sum says.
	if vix.Value > vixVetoLevel {
		rec.NormalizedScore = 50
		rec.Action = models.ActionHold
		rec.Color = "yellow"
		rec.Confidence = "low"
		rec.Signals = append(rec.Signals, "Volatile market - hold position")
		return rec
	}

	switch {
	case normalized >= 70:
		rec.Action, rec.Color, rec.Confidence = models.ActionStrongBuy, "green", "high"
	case normalized >= 55:
		rec.Action, rec.Color, rec.Confidence = models.ActionBuy, "lightgreen", "moderate"
	case normalized <= 30:
		rec.Action, rec.Color, rec.Confidence = models.ActionStrongSell, "red", "high"
	case normalized <= 45:
		rec.Action, rec.Color, rec.Confidence = models.ActionSell, "orange", "moderate"
	default:
		rec.Action, rec.Color, rec.Confidence = models.ActionHold, "yellow", "low"
	}
	return rec
}

func fibLevelValue(label string) float64 {
	switch label {
	case "23.6":
		return 23.6
	case "38.2":
		return 38.2
	case "50.0":
		return 50.0
	case "61.8":
		return 61.8
	case "78.6":
		return 78.6
	case "100.0":
		return 100.0
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
