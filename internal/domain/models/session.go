package models

import "time"

// OrderKind is a closed set of order types with distinct session rules.
type OrderKind int

const (
	OrderMarket OrderKind = iota
	OrderLimit
	OrderStop
)

// String returns the wire name of the order kind.
func (k OrderKind) String() string {
	switch k {
	case OrderMarket:
		return "market"
	case OrderLimit:
		return "limit"
	case OrderStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ParseOrderKind maps a wire name onto an OrderKind.
func ParseOrderKind(s string) (OrderKind, bool) {
	switch s {
	case "market":
		return OrderMarket, true
	case "limit":
		return OrderLimit, true
	case "stop":
		return OrderStop, true
	default:
		return OrderMarket, false
	}
}

// MarketSession is the calendar's view of an instant. On a market day exactly
// one of open/pre-market/after-hours/fully-closed holds; outside market days
// none of the session flags are set.
type MarketSession struct {
	IsOpen          bool      `json:"is_open"`
	IsPreMarket     bool      `json:"is_pre_market"`
	IsAfterHours    bool      `json:"is_after_hours"`
	IsExtendedHours bool      `json:"is_extended_hours"`
	IsMarketDay     bool      `json:"is_market_day"`
	CurrentTime     time.Time `json:"current_time"`
	NextOpen        time.Time `json:"next_open"`
	NextClose       time.Time `json:"next_close"`
}

// TradingWindow is the human-facing summary of the current session.
type TradingWindow struct {
	Window   string `json:"window"` // regular, pre_market, after_hours, closed
	Message  string `json:"message"`
	CanTrade bool   `json:"can_trade"`
}
