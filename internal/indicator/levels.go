package indicator

import (
	"math"

	"MarketLens/internal/domain/models"
)

// levelWindow is the trailing span used for support/resistance and
// Fibonacci swings.
const levelWindow = 30

// nearLevelPct is the proximity threshold for support/resistance flags.
const nearLevelPct = 5.0

// fibProximityPct is the window for snapping the close to a retracement.
const fibProximityPct = 3.0

// SupportResistance finds the trailing-window extremes and the price's
// proximity to them. When the price sits near both levels (possible only
// when they are within ~10% of each other) near-support wins in the signal.
func SupportResistance(candles []models.Candle) models.SupportResistance {
	if len(candles) == 0 {
		return models.SupportResistance{Signal: "neutral"}
	}
	recent := candles
	if len(recent) > levelWindow {
		recent = recent[len(recent)-levelWindow:]
	}

	support := recent[0].Low
	resistance := recent[0].High
	for _, c := range recent[1:] {
		if c.Low < support {
			support = c.Low
		}
		if c.High > resistance {
			resistance = c.High
		}
	}
	current := recent[len(recent)-1].Close
	if support <= 0 || current <= 0 {
		return models.SupportResistance{Signal: "neutral"}
	}

	supportDist := (current - support) / support * 100
	resistanceDist := (resistance - current) / current * 100
	nearSupport := supportDist < nearLevelPct
	nearResistance := resistanceDist < nearLevelPct

	signal := "neutral"
	if nearSupport {
		signal = "bullish"
	} else if nearResistance {
		signal = "bearish"
	}

	return models.SupportResistance{
		SupportLevel:          round2(support),
		ResistanceLevel:       round2(resistance),
		CurrentPrice:          round2(current),
		SupportDistancePct:    round2(supportDist),
		ResistanceDistancePct: round2(resistanceDist),
		NearSupport:           nearSupport,
		NearResistance:        nearResistance,
		Signal:                signal,
	}
}

// fibRatios are the standard retracement ratios, keyed by their wire label.
var fibRatios = []struct {
	label string
	ratio float64
}{
	{"0.0", 0},
	{"23.6", 0.236},
	{"38.2", 0.382},
	{"50.0", 0.5},
	{"61.8", 0.618},
	{"78.6", 0.786},
	{"100.0", 1},
}

// FibonacciLevels computes retracement levels between the trailing swing
// high and low. Requires a full window; shorter series yield an empty
// result rather than a partial one.
func FibonacciLevels(candles []models.Candle) models.Fibonacci {
	if len(candles) < levelWindow {
		return models.Fibonacci{Levels: map[string]float64{}}
	}
	recent := candles[len(candles)-levelWindow:]

	swingHigh := recent[0].High
	swingLow := recent[0].Low
	for _, c := range recent[1:] {
		if c.High > swingHigh {
			swingHigh = c.High
		}
		if c.Low < swingLow {
			swingLow = c.Low
		}
	}
	current := candles[len(candles)-1].Close
	priceRange := swingHigh - swingLow

	levels := make(map[string]float64, len(fibRatios))
	currentLevel := ""
	minDistance := math.Inf(1)
	for _, fr := range fibRatios {
		price := swingHigh - priceRange*fr.ratio
		levels[fr.label] = round2(price)
		if price <= 0 {
			continue
		}
		distance := math.Abs(current-price) / price * 100
		if distance < minDistance && distance < fibProximityPct {
			minDistance = distance
			currentLevel = fr.label
		}
	}

	trend := "down"
	if current > swingHigh-priceRange*0.5 {
		trend = "up"
	}

	return models.Fibonacci{
		Levels:       levels,
		SwingHigh:    round2(swingHigh),
		SwingLow:     round2(swingLow),
		CurrentPrice: round2(current),
		CurrentLevel: currentLevel,
		Trend:        trend,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
