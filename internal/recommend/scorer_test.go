package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/domain/models"
)

// neutralInputs lands in the hold band: +20 (MACD) -15 (MA) -7 (volume)
// puts the normalized score at 48.
func neutralInputs() (models.IndicatorSet, models.VIXReading) {
	ind := models.IndicatorSet{
		RSI:            50,
		MACD:           models.MACD{Histogram: 0.1, IsPositive: true},
		Volume:         models.VolumeStats{Ratio: 0.5},
		MovingAverages: models.MovingAverages{Trend: "neutral"},
	}
	return ind, models.ClassifyVIX(18)
}

func bullishInputs() (models.IndicatorSet, models.VIXReading) {
	ind := models.IndicatorSet{
		RSI:  25,
		MACD: models.MACD{Histogram: 0.8, IsPositive: true},
		Volume: models.VolumeStats{
			Current: 2000, Average: 1000, Ratio: 2.0,
		},
		MovingAverages:    models.MovingAverages{SMA20: 110, SMA50: 100, Trend: "bullish"},
		SupportResistance: models.SupportResistance{NearSupport: true, SupportDistancePct: 2.1, Signal: "bullish"},
		Divergence:        models.Divergence{Detected: true, Type: "bullish", Strength: 75},
		Fibonacci:         models.Fibonacci{CurrentLevel: "61.8"},
	}
	return ind, models.ClassifyVIX(12)
}

func TestScoreBreakdownShape(t *testing.T) {
	ind, vix := neutralInputs()
	rec := Score(ind, vix)

	wantOrder := []string{
		"RSI", "MACD", "Moving Averages", "Volume",
		"VIX", "Support/Resistance", "Divergence", "Fibonacci",
	}
	require.Len(t, rec.Breakdown, len(wantOrder))
	for i, want := range wantOrder {
		assert.Equal(t, want, rec.Breakdown[i].Label)
	}

	wantWeights := []int{25, 20, 30, 15, 10, 10, 10, 10}
	for i, want := range wantWeights {
		assert.Equal(t, want, rec.Breakdown[i].Weight, "weight for %s", rec.Breakdown[i].Label)
	}
}

func TestScoreSumInvariant(t *testing.T) {
	cases := []func() (models.IndicatorSet, models.VIXReading){neutralInputs, bullishInputs}
	for _, inputs := range cases {
		ind, vix := inputs()
		rec := Score(ind, vix)

		sum := 0
		for _, f := range rec.Breakdown {
			sum += f.Contribution
		}
		want := 50 + sum
		if want < 0 {
			want = 0
		}
		if want > 100 {
			want = 100
		}
		assert.Equal(t, want, rec.NormalizedScore)
	}
}

func TestScoreStrongBuy(t *testing.T) {
	ind, vix := bullishInputs()
	rec := Score(ind, vix)

	// All eight factors max out bullish: 25+20+30+15+10+10+10+10 clamps at 100.
	assert.Equal(t, 100, rec.NormalizedScore)
	assert.Equal(t, models.ActionStrongBuy, rec.Action)
	assert.Equal(t, "green", rec.Color)
	assert.Equal(t, "high", rec.Confidence)
	assert.Contains(t, rec.Signals, "RSI oversold (bullish)")
}

func TestScoreStrongSell(t *testing.T) {
	ind := models.IndicatorSet{
		RSI:               80,
		MACD:              models.MACD{Histogram: -0.5, IsPositive: false},
		Volume:            models.VolumeStats{Ratio: 0.5},
		MovingAverages:    models.MovingAverages{Trend: "bearish"},
		SupportResistance: models.SupportResistance{NearResistance: true},
		Divergence:        models.Divergence{Detected: true, Type: "bearish", Strength: 75},
	}
	rec := Score(ind, models.ClassifyVIX(22))

	// -25 -10 -15 -7 +0 -5 -10 = -72, clamps at 0.
	assert.Equal(t, 0, rec.NormalizedScore)
	assert.Equal(t, models.ActionStrongSell, rec.Action)
	assert.Equal(t, "red", rec.Color)
	assert.Equal(t, "high", rec.Confidence)
}

func TestScoreNeutralHold(t *testing.T) {
	ind, vix := neutralInputs()
	rec := Score(ind, vix)

	assert.Equal(t, models.ActionHold, rec.Action)
	assert.Equal(t, "yellow", rec.Color)
	assert.Equal(t, "low", rec.Confidence)
}

func TestVolatilityVeto(t *testing.T) {
	ind, _ := bullishInputs()
	rec := Score(ind, models.ClassifyVIX(35))

	assert.Equal(t, models.ActionHold, rec.Action)
	assert.Equal(t, 50, rec.NormalizedScore)
	assert.Equal(t, "yellow", rec.Color)
	assert.Equal(t, "low", rec.Confidence)
	require.NotEmpty(t, rec.Signals)
	assert.Equal(t, "Volatile market - hold position", rec.Signals[len(rec.Signals)-1])
	// The factor breakdown is still reported for explainability.
	assert.Len(t, rec.Breakdown, 8)
}

func TestScoreDeterministic(t *testing.T) {
	ind, vix := bullishInputs()
	assert.Equal(t, Score(ind, vix), Score(ind, vix))
}
