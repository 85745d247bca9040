package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"MarketLens/internal/service/ratelimit"
	"MarketLens/internal/usecase"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"
)

// minStreamInterval is the floor for quote push frequency. Clients cannot
// ask for faster updates than this.
const minStreamInterval = 10 * time.Second

// StreamHandler pushes periodic quote updates over a WebSocket. Each
// connection polls the analyzer on its own ticker; the cache layer keeps
// concurrent streams of the same symbol from fanning out to the provider.
type StreamHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	rl       *ratelimit.Limiter
	interval time.Duration

	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer, interval time.Duration) *StreamHandler {
	if interval < minStreamInterval {
		interval = minStreamInterval
	}
	return &StreamHandler{
		logger:   logger,
		analyzer: analyzer,
		rl:       ratelimit.New(),
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/:symbol", h.Stream)
}

func (h *StreamHandler) Stream(c echo.Context) error {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symbol required")
	}
	if !h.rl.Allow(c.RealIP()+":ws", 5, 1) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	// Clients may slow the push cadence down, never speed it up past the floor.
	interval := time.Duration(xhttp.ParseIntDefault(c.QueryParam("interval"), int(h.interval/time.Second))) * time.Second
	if interval < minStreamInterval {
		interval = minStreamInterval
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	h.logger.Info("ws stream opened",
		xlogger.String("symbol", symbol), xlogger.String("remote", c.RealIP()))

	ctx := c.Request().Context()

	// Drain the client side so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First quote goes out immediately; the ticker paces the rest.
	if err := h.push(c, conn, symbol); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			h.logger.Debug("ws stream closed by client", xlogger.String("symbol", symbol))
			return nil
		case <-ticker.C:
			if err := h.push(c, conn, symbol); err != nil {
				h.logger.Debug("ws write failed, closing stream",
					xlogger.String("symbol", symbol), xlogger.Error(err))
				return nil
			}
		}
	}
}

func (h *StreamHandler) push(c echo.Context, conn *websocket.Conn, symbol string) error {
	quote := h.analyzer.GetStockQuote(c.Request().Context(), symbol)
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteJSON(quote)
}
