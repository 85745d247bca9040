package models

// DegradeReason classifies why a value was served from the fallback path
// instead of the live provider.
type DegradeReason string

const (
	DegradeNone                DegradeReason = ""
	DegradeProviderError       DegradeReason = "provider_error"
	DegradeDataUnavailable     DegradeReason = "data_unavailable"
	DegradeInsufficientHistory DegradeReason = "insufficient_history"
)

// Degradation records the fallback path a value took. The zero value means
// the value came from the live provider.
type Degradation struct {
	Reason DegradeReason
	Cause  string
}

// IsDegraded reports whether the value was substituted.
func (d Degradation) IsDegraded() bool { return d.Reason != DegradeNone }

// Degrade builds a Degradation from a reason and the original failure.
func Degrade(reason DegradeReason, cause error) Degradation {
	d := Degradation{Reason: reason}
	if cause != nil {
		d.Cause = cause.Error()
	}
	return d
}

// Quote is a point-in-time price snapshot for a symbol. Simulated is true
// whenever the value did not come from the live provider and must propagate
// unmodified to every downstream consumer.
type Quote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
	Timestamp     int64   `json:"timestamp"`
	Simulated     bool    `json:"is_simulated"`
	MarketStatus  string  `json:"market_status,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// MarkDegraded stamps the degradation fields onto the quote.
func (q *Quote) MarkDegraded(d Degradation) {
	if !d.IsDegraded() {
		return
	}
	q.Simulated = true
	q.Error = d.Cause
}

// VIXReading is a volatility index value with its interpretation bands.
type VIXReading struct {
	Value     float64 `json:"value"`
	Status    string  `json:"status"`     // very_low, low, elevated, high
	RiskLevel string  `json:"risk_level"` // low, moderate, high, very_high
	Simulated bool    `json:"is_simulated,omitempty"`
}

// ClassifyVIX fills the status/risk bands for a raw volatility value.
func ClassifyVIX(value float64) VIXReading {
	r := VIXReading{Value: value}
	switch {
	case value < 12:
		r.Status, r.RiskLevel = "very_low", "low"
	case value < 20:
		r.Status, r.RiskLevel = "low", "moderate"
	case value < 30:
		r.Status, r.RiskLevel = "elevated", "high"
	default:
		r.Status, r.RiskLevel = "high", "very_high"
	}
	return r
}
