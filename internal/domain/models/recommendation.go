package models

import "time"

// Action is the discrete recommendation label.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// FactorContribution is one row of the scoring breakdown. Every factor
// appears exactly once, in table order, even with a zero contribution.
type FactorContribution struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	Contribution int     `json:"contribution"`
	Weight       int     `json:"weight"`
}

// Recommendation is the scored buy/sell/hold verdict. Score is the legacy
// unbounded signed signal; NormalizedScore is the 0-100 presentation value.
type Recommendation struct {
	Action          Action               `json:"action"`
	Score           int                  `json:"score"`
	NormalizedScore int                  `json:"normalized_score"`
	Color           string               `json:"color"`
	Confidence      string               `json:"confidence"` // low, moderate, high
	Signals         []string             `json:"signals"`
	Breakdown       []FactorContribution `json:"breakdown"`
}

// Analysis is the complete per-symbol result assembled by the orchestrator.
type Analysis struct {
	Symbol         string         `json:"symbol"`
	Quote          Quote          `json:"quote"`
	Indicators     IndicatorSet   `json:"indicators"`
	VIX            VIXReading     `json:"vix"`
	Recommendation Recommendation `json:"recommendation"`
	Timestamp      time.Time      `json:"timestamp"`
}
