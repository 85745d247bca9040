package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/calendar"
	"MarketLens/internal/domain/models"
	pkgcache "MarketLens/pkg/cache"
	xlogger "MarketLens/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordProviderRequest(string, string) {}
func (nopMetrics) RecordFallback(string)                {}
func (nopMetrics) RecordCache(string, bool)             {}
func (nopMetrics) RecordLastPrice(string, float64)      {}
func (nopMetrics) RecordLatency(string, float64)        {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	require.NoError(t, err)
	return func() time.Time { return ts }
}

func newMockedCache(t *testing.T) (*AnalysisCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	store := pkgcache.NewRedisCacheFromClient(db, "marketlens")
	c := New(store, calendar.NewDefault(), testLogger(t), nopMetrics{}, DefaultTTLs())
	return c, mock
}

func TestQuoteTTLFollowsSession(t *testing.T) {
	c, _ := newMockedCache(t)

	// Tuesday 2025-03-04 is a regular trading day.
	c.now = fixedClock(t, "2025-03-04 10:00:00")
	assert.Equal(t, 5*time.Second, c.quoteTTL())

	c.now = fixedClock(t, "2025-03-04 08:00:00")
	assert.Equal(t, 30*time.Second, c.quoteTTL())

	c.now = fixedClock(t, "2025-03-04 17:30:00")
	assert.Equal(t, 30*time.Second, c.quoteTTL())

	c.now = fixedClock(t, "2025-03-08 12:00:00") // Saturday
	assert.Equal(t, 300*time.Second, c.quoteTTL())
}

func TestPutAndGetQuote(t *testing.T) {
	c, mock := newMockedCache(t)
	c.now = fixedClock(t, "2025-03-04 10:00:00")

	quote := models.Quote{Symbol: "TSLA", CurrentPrice: 253.2, Timestamp: 1700000000}
	data, err := json.Marshal(quote)
	require.NoError(t, err)

	mock.ExpectSet("marketlens:quote:TSLA", data, 5*time.Second).SetVal("OK")
	c.PutQuote(context.Background(), "TSLA", quote)

	mock.ExpectGet("marketlens:quote:TSLA").SetVal(string(data))
	got, ok := c.GetQuote(context.Background(), "TSLA")
	require.True(t, ok)
	assert.Equal(t, quote, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuoteMiss(t *testing.T) {
	c, mock := newMockedCache(t)

	mock.ExpectGet("marketlens:quote:NVDA").RedisNil()
	_, ok := c.GetQuote(context.Background(), "NVDA")
	assert.False(t, ok)
}

func TestUnreachableStoreIsSilent(t *testing.T) {
	c, mock := newMockedCache(t)
	c.now = fixedClock(t, "2025-03-04 10:00:00")

	mock.ExpectGet("marketlens:quote:SPY").SetErr(errors.New("connection refused"))
	_, ok := c.GetQuote(context.Background(), "SPY")
	assert.False(t, ok, "a dead store must read as a miss")

	// Writes swallow the failure too.
	quote := models.Quote{Symbol: "SPY", CurrentPrice: 4128.32}
	data, err := json.Marshal(quote)
	require.NoError(t, err)
	mock.ExpectSet("marketlens:quote:SPY", data, 5*time.Second).SetErr(errors.New("connection refused"))
	c.PutQuote(context.Background(), "SPY", quote)
}

func TestNilStoreIsAlwaysMiss(t *testing.T) {
	c := New(nil, calendar.NewDefault(), testLogger(t), nopMetrics{}, DefaultTTLs())

	_, ok := c.GetQuote(context.Background(), "TSLA")
	assert.False(t, ok)
	c.PutQuote(context.Background(), "TSLA", models.Quote{Symbol: "TSLA"})

	stats := c.Stats(context.Background())
	assert.False(t, stats.Connected)
}

func TestInvalidateSymbol(t *testing.T) {
	c, mock := newMockedCache(t)

	mock.ExpectDel(
		"marketlens:quote:TSLA",
		"marketlens:indicators:TSLA",
		"marketlens:analysis:TSLA",
	).SetVal(3)
	c.InvalidateSymbol(context.Background(), "TSLA")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	c, mock := newMockedCache(t)

	mock.ExpectDBSize().SetVal(42)
	mock.ExpectInfo("stats").SetVal("# Stats\r\nkeyspace_hits:10\r\nkeyspace_misses:4\r\n")

	stats := c.Stats(context.Background())
	assert.True(t, stats.Connected)
	assert.EqualValues(t, 42, stats.Keys)
	assert.EqualValues(t, 10, stats.Hits)
	assert.EqualValues(t, 4, stats.Misses)
}

func TestStatsUnreachable(t *testing.T) {
	c, mock := newMockedCache(t)

	mock.ExpectDBSize().SetErr(errors.New("connection refused"))
	stats := c.Stats(context.Background())
	assert.False(t, stats.Connected)
	assert.NotEmpty(t, stats.Error)
}

func TestIndicatorAndAnalysisTTLs(t *testing.T) {
	c, mock := newMockedCache(t)

	ind := models.NeutralIndicators()
	indData, err := json.Marshal(ind)
	require.NoError(t, err)
	mock.ExpectSet("marketlens:indicators:TSLA", indData, 300*time.Second).SetVal("OK")
	c.PutIndicators(context.Background(), "TSLA", ind)

	analysis := models.Analysis{Symbol: "TSLA"}
	aData, err := json.Marshal(analysis)
	require.NoError(t, err)
	mock.ExpectSet("marketlens:analysis:TSLA", aData, 60*time.Second).SetVal("OK")
	c.PutAnalysis(context.Background(), "TSLA", analysis)

	assert.NoError(t, mock.ExpectationsWereMet())
}
