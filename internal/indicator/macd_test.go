package indicator

import (
	"math"
	"testing"
)

func TestEMASeedFromFirstValue(t *testing.T) {
	// span 3 -> alpha 0.5; seed equals the first input.
	got := EMA([]float64{2, 4, 4}, 3)
	want := []float64{2, 3, 3.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("EMA[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEMAEmpty(t *testing.T) {
	if got := EMA(nil, 12); got != nil {
		t.Errorf("EMA(nil) = %v, want nil", got)
	}
}

func TestMACDConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 250
	}
	line, sig, hist := MACDSeries(closes, 12, 26, 9)
	for i := range closes {
		if line[i] != 0 || sig[i] != 0 || hist[i] != 0 {
			t.Fatalf("expected zero MACD at %d: line=%v sig=%v hist=%v", i, line[i], sig[i], hist[i])
		}
	}
}

func TestMACDUptrendPositive(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	line, _, hist := MACDSeries(closes, 12, 26, 9)
	if line[len(line)-1] <= 0 {
		t.Errorf("MACD line = %v, want > 0 in a steady uptrend", line[len(line)-1])
	}
	if hist[len(hist)-1] < 0 {
		t.Errorf("histogram = %v, want >= 0 in a steady uptrend", hist[len(hist)-1])
	}
}
