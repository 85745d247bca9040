package indicator

// EMA computes an exponential moving average series with the zero-lag
// seed-from-first-value convention: the first EMA value equals the first
// input value, alpha = 2/(span+1).
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// MACDSeries computes MACD line, signal line, and histogram series for the
// standard 12/26/9 parameterization over the given closes.
func MACDSeries(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	if len(closes) == 0 {
		return nil, nil, nil
	}
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig = EMA(line, signal)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - sig[i]
	}
	return line, sig, hist
}
