package models

// Requests for the market HTTP endpoints. Defined in domain for consistency and reuse.

type OHLCVRequest struct {
	Resolution string `query:"resolution" json:"resolution" default:"D" validate:"oneof=1 5 15 30 60 D W M"`
	Days       int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
}

type CanTradeRequest struct {
	OrderType string `query:"order_type" json:"order_type" default:"market" validate:"oneof=market limit stop"`
}
