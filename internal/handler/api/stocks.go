package api

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	models "MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/internal/usecase"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"
)

// StocksHandler serves quote, indicator, volatility, and analysis endpoints.
type StocksHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewStocksHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *StocksHandler {
	return &StocksHandler{logger: logger, analyzer: analyzer}
}

func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/stocks")
	g.GET("/quote/:symbol", h.Quote)
	g.GET("/indicators/:symbol", h.Indicators)
	g.GET("/vix", h.VIX)
	g.GET("/analysis/:symbol", h.Analysis)

	m := e.Group("/api/market")
	m.GET("/ohlcv/:symbol", h.OHLCV)

	c := e.Group("/api/cache")
	c.GET("/stats", h.CacheStats)
	c.DELETE("/:symbol", h.Invalidate)
}

func symbolParam(c echo.Context) (string, *xhttp.AppError) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return "", xhttp.BadRequestError("symbol required")
	}
	return strings.ToUpper(symbol), nil
}

func (h *StocksHandler) Quote(c echo.Context) error {
	symbol, aerr := symbolParam(c)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}
	quote := h.analyzer.GetStockQuote(c.Request().Context(), symbol)
	return xhttp.SuccessResponse(c, quote)
}

func (h *StocksHandler) Indicators(c echo.Context) error {
	symbol, aerr := symbolParam(c)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}
	ind := h.analyzer.GetTechnicalIndicators(c.Request().Context(), symbol)
	return xhttp.SuccessResponse(c, ind)
}

func (h *StocksHandler) VIX(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.analyzer.GetVIX(c.Request().Context()))
}

func (h *StocksHandler) Analysis(c echo.Context) error {
	symbol, aerr := symbolParam(c)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}
	analysis, err := h.analyzer.Analyze(c.Request().Context(), symbol)
	if err != nil {
		h.logger.Error("analysis usecase error",
			xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, analysis)
}

// OHLCVResponse wraps a candle series with its provenance flag.
type OHLCVResponse struct {
	Symbol     string          `json:"symbol"`
	Resolution string          `json:"resolution"`
	Candles    []models.Candle `json:"candles"`
	Simulated  bool            `json:"is_simulated"`
}

func (h *StocksHandler) OHLCV(c echo.Context) error {
	symbol, aerr := symbolParam(c)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}
	req := &models.OHLCVRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := domrepo.NormalizeResolution(req.Resolution)
	end := xhttp.ParseTimeDefault(c.QueryParam("to"), time.Time{})

	candles, deg := h.analyzer.GetOHLCV(c.Request().Context(), symbol, res, req.Days, end)
	return xhttp.SuccessResponse(c, OHLCVResponse{
		Symbol:     symbol,
		Resolution: string(res),
		Candles:    candles,
		Simulated:  deg.IsDegraded(),
	})
}

func (h *StocksHandler) CacheStats(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.analyzer.CacheStats(c.Request().Context()))
}

func (h *StocksHandler) Invalidate(c echo.Context) error {
	symbol, aerr := symbolParam(c)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}
	h.analyzer.InvalidateSymbol(c.Request().Context(), symbol)
	return xhttp.NoContentResponse(c)
}
