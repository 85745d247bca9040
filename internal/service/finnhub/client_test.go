package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	drepo "MarketLens/internal/domain/repository"
	xlogger "MarketLens/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key", testLogger(t), WithBaseURL(srv.URL), WithTimeout(2*time.Second))
	return c, srv
}

func TestGetQuoteLive(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c":253.5,"d":1.2,"dp":0.48,"h":255.1,"l":250.3,"o":251.0,"pc":252.3,"t":1700000000}`))
	}))

	q, deg := c.GetQuote(context.Background(), "TSLA")
	if deg.IsDegraded() {
		t.Fatalf("unexpected degradation: %+v", deg)
	}
	if q.CurrentPrice != 253.5 || q.Simulated {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestGetQuoteZeroPriceUsesPreviousClose(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0,"pc":252.3}`))
	}))

	q, deg := c.GetQuote(context.Background(), "TSLA")
	if deg.IsDegraded() {
		t.Fatalf("previous-close substitution must not degrade: %+v", deg)
	}
	if q.CurrentPrice != 252.3 {
		t.Errorf("price = %v, want previous close 252.3", q.CurrentPrice)
	}
}

func TestGetQuoteProviderFailureServesFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	q, deg := c.GetQuote(context.Background(), "SOXL")
	if !deg.IsDegraded() || deg.Reason != models.DegradeProviderError {
		t.Fatalf("expected provider_error degradation, got %+v", deg)
	}
	if !q.Simulated {
		t.Error("fallback quote must be flagged simulated")
	}
	if q.CurrentPrice != 43.12 {
		t.Errorf("price = %v, want table anchor 43.12", q.CurrentPrice)
	}
}

func TestGetQuoteUnknownSymbolFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))

	q, _ := c.GetQuote(context.Background(), "ZZZZ")
	if q.CurrentPrice != 150.0 {
		t.Errorf("price = %v, want default anchor 150.0", q.CurrentPrice)
	}
}

func TestGetCandlesNoDataServesSynthetic(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	}))

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	candles, deg := c.GetCandles(context.Background(), "TSLA", drepo.ResDay, from, to)
	if !deg.IsDegraded() {
		t.Fatal("expected degradation for no_data status")
	}
	if len(candles) != 30 {
		t.Fatalf("len = %d, want 30 synthetic bars", len(candles))
	}
	for i, b := range candles {
		if b.High < b.Open || b.High < b.Close || b.Low > b.Open || b.Low > b.Close {
			t.Errorf("bar %d structurally invalid: %+v", i, b)
		}
		if i > 0 && b.Timestamp <= candles[i-1].Timestamp {
			t.Errorf("bar %d timestamp not ascending", i)
		}
	}
}

func TestGetCandlesLive(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"ok","t":[1700000000,1700086400],"o":[10,11],"h":[12,13],"l":[9,10],"c":[11,12],"v":[1000,1100]}`))
	}))

	candles, deg := c.GetCandles(context.Background(), "TSLA", drepo.ResDay, time.Now().AddDate(0, 0, -2), time.Now())
	if deg.IsDegraded() {
		t.Fatalf("unexpected degradation: %+v", deg)
	}
	if len(candles) != 2 || candles[1].Close != 12 || candles[1].Volume != 1100 {
		t.Errorf("unexpected candles %+v", candles)
	}
}

func TestGetVIXLastResort(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))

	v, deg := c.GetVIX(context.Background())
	if !deg.IsDegraded() {
		t.Fatal("expected degradation for unreachable providers")
	}
	if v.Value != 14.08 || !v.Simulated {
		t.Errorf("reading = %+v, want fixed simulated 14.08", v)
	}
	if v.Status != "low" || v.RiskLevel != "moderate" {
		t.Errorf("bands = %s/%s, want low/moderate", v.Status, v.RiskLevel)
	}
}

func TestGetVIXSecondaryProvider(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0}`))
	}))
	t.Cleanup(primary.Close)
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[null,21.5]}]}}]}}`))
	}))
	t.Cleanup(secondary.Close)

	c := New("test-key", testLogger(t),
		WithBaseURL(primary.URL),
		WithVIXFallbackURL(secondary.URL),
	)

	v, deg := c.GetVIX(context.Background())
	if deg.IsDegraded() {
		t.Fatalf("secondary provider data is live, got degradation %+v", deg)
	}
	if v.Value != 21.5 || v.Simulated {
		t.Errorf("reading = %+v, want live 21.5", v)
	}
	if v.Status != "elevated" {
		t.Errorf("status = %s, want elevated", v.Status)
	}
}

func TestVIXBands(t *testing.T) {
	cases := []struct {
		value  float64
		status string
		risk   string
	}{
		{10, "very_low", "low"},
		{12, "low", "moderate"},
		{19.99, "low", "moderate"},
		{20, "elevated", "high"},
		{29.99, "elevated", "high"},
		{30, "high", "very_high"},
		{45, "high", "very_high"},
	}
	for _, tc := range cases {
		r := models.ClassifyVIX(tc.value)
		if r.Status != tc.status || r.RiskLevel != tc.risk {
			t.Errorf("ClassifyVIX(%v) = %s/%s, want %s/%s", tc.value, r.Status, r.RiskLevel, tc.status, tc.risk)
		}
	}
}
