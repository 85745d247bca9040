package models

// Candle represents a single OHLCV bar. Series are ordered by ascending
// timestamp with no duplicates and are immutable once produced.
type Candle struct {
	Timestamp int64   `json:"time"` // epoch seconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// Closes extracts the close series from candles.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
