package calculator

import (
	"math"

	"saftrade/internal/model"
)

// ATRSeries computes the average true range over the full candle series
// using Wilder smoothing, matching the RSI smoothing above. The result is
// aligned with the input; the first defined value sits at index period,
// positions before it are left at zero.
func ATRSeries(candles []model.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	if period <= 0 || len(candles) < period+1 {
		return out
	}

	// True range needs the previous close, so tr[i] is defined from i=1.
	tr := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		hl := candles[i].High - candles[i].Low
		hc := math.Abs(candles[i].High - candles[i-1].Close)
		lc := math.Abs(candles[i].Low - candles[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	var sum float64
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out[period] = atr

	for i := period + 1; i < len(candles); i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}
