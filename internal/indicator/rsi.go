package indicator

// RSI computes a Wilder-style Relative Strength Index over the last `period`
// price changes using a simple rolling mean of gains and losses. A series
// with too few changes yields the neutral 50. When the rolling loss average
// is zero the ratio is undefined; an all-gains window clamps to the defined
// limit of 100, a flat window stays neutral.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss += -delta
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
