package calculator

import "saftrade/internal/model"

// EMASeries computes the exponential moving average over the full series.
// The result is aligned with the input; positions before the first full
// window are left at zero. The first defined value is the simple average of
// the initial window, after which the standard smoothing recurrence applies.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	k := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*k + ema
		out[i] = ema
	}
	return out
}

// ExtractCloses returns the close column of a candle series.
func ExtractCloses(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// ExtractVolumes returns the volume column of a candle series.
func ExtractVolumes(candles []model.Candle) []float64 {
	vols := make([]float64, len(candles))
	for i, c := range candles {
		vols[i] = float64(c.Volume)
	}
	return vols
}
