package models

// MACD holds the 12/26/9 oscillator components.
type MACD struct {
	Value      float64 `json:"value"`
	Signal     float64 `json:"signal"`
	Histogram  float64 `json:"histogram"`
	IsPositive bool    `json:"is_positive"`
}

// VolumeStats compares the latest volume against its 20-bar mean.
type VolumeStats struct {
	Current int64   `json:"current"`
	Average int64   `json:"average"`
	Ratio   float64 `json:"ratio"`
}

// MovingAverages holds the 20/50 simple moving averages and their trend.
// Trend is "bullish" when SMA20 > SMA50, otherwise "bearish" (ties resolve
// to bearish), or "neutral" for the insufficient-history default.
type MovingAverages struct {
	SMA20 float64 `json:"sma_20"`
	SMA50 float64 `json:"sma_50"`
	Trend string  `json:"trend"`
}

// SupportResistance holds the trailing-window extreme levels and proximity
// flags. When both proximity flags are set, near-support wins in Signal.
type SupportResistance struct {
	SupportLevel          float64 `json:"support_level"`
	ResistanceLevel       float64 `json:"resistance_level"`
	CurrentPrice          float64 `json:"current_price"`
	SupportDistancePct    float64 `json:"support_distance_pct"`
	ResistanceDistancePct float64 `json:"resistance_distance_pct"`
	NearSupport           bool    `json:"near_support"`
	NearResistance        bool    `json:"near_resistance"`
	Signal                string  `json:"signal"` // bullish, bearish, neutral
}

// Divergence flags a price/oscillator disagreement. Strength is a coarse
// fixed confidence (75 when detected, 0 otherwise), not a continuous measure.
type Divergence struct {
	Detected bool   `json:"detected"`
	Type     string `json:"type,omitempty"` // bullish or bearish
	Strength int    `json:"strength"`
}

// Fibonacci holds retracement levels between the trailing swing high/low.
// CurrentLevel names the ratio whose price is within 3% of the last close,
// the closest when several qualify; empty when none do.
type Fibonacci struct {
	Levels       map[string]float64 `json:"levels"`
	SwingHigh    float64            `json:"swing_high"`
	SwingLow     float64            `json:"swing_low"`
	CurrentPrice float64            `json:"current_price"`
	CurrentLevel string             `json:"current_level,omitempty"`
	Trend        string             `json:"trend,omitempty"` // up or down vs the 50% line
}

// IndicatorSet is the full derived view over a candle series. It is
// recomputed per request and never persisted beyond the cache TTL.
type IndicatorSet struct {
	RSI               float64           `json:"rsi"`
	MACD              MACD              `json:"macd"`
	Volume            VolumeStats       `json:"volume"`
	MovingAverages    MovingAverages    `json:"moving_averages"`
	SupportResistance SupportResistance `json:"support_resistance"`
	Divergence        Divergence        `json:"divergence"`
	Fibonacci         Fibonacci         `json:"fibonacci"`
	Simulated         bool              `json:"is_simulated,omitempty"`
}

// NeutralIndicators is the substitute served when fewer than 20 candles are
// available: RSI pinned to 50, MACD flat, volume ratio neutral.
func NeutralIndicators() IndicatorSet {
	return IndicatorSet{
		RSI:            50.0,
		MACD:           MACD{},
		Volume:         VolumeStats{Ratio: 1.0},
		MovingAverages: MovingAverages{Trend: "neutral"},
		SupportResistance: SupportResistance{
			Signal: "neutral",
		},
		Divergence: Divergence{},
		Fibonacci:  Fibonacci{Levels: map[string]float64{}},
		Simulated:  true,
	}
}
