package api

import (
	"github.com/labstack/echo/v4"

	models "MarketLens/internal/domain/models"
	"MarketLens/internal/usecase"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"
)

// MarketHoursHandler exposes the trading-calendar endpoints.
type MarketHoursHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewMarketHoursHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *MarketHoursHandler {
	return &MarketHoursHandler{logger: logger, analyzer: analyzer}
}

func (h *MarketHoursHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market-hours")
	g.GET("/status", h.Status)
	g.GET("/trading-window", h.TradingWindow)
	g.GET("/can-trade", h.CanTrade)
}

func (h *MarketHoursHandler) Status(c echo.Context) error {
	session, err := h.analyzer.GetMarketStatus()
	if err != nil {
		h.logger.Error("market status calendar error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, session)
}

func (h *MarketHoursHandler) TradingWindow(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.analyzer.GetTradingWindow())
}

// CanTradeResponse answers whether an order kind may trade right now.
type CanTradeResponse struct {
	CanTrade  bool   `json:"can_trade"`
	OrderType string `json:"order_type"`
	Session   string `json:"session"`
}

func (h *MarketHoursHandler) CanTrade(c echo.Context) error {
	req := &models.CanTradeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	kind, ok := models.ParseOrderKind(req.OrderType)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("unknown order type %q", req.OrderType))
	}

	window := h.analyzer.GetTradingWindow()
	return xhttp.SuccessResponse(c, CanTradeResponse{
		CanTrade:  h.analyzer.CanTradeNow(kind),
		OrderType: kind.String(),
		Session:   window.Window,
	})
}
