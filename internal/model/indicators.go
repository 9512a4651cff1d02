package model

// IndicatorRow holds the indicator values for a single bar.
type IndicatorRow struct {
	EMAShort  float64 // 20-period
	EMAMedium float64 // 50-period
	EMALong   float64 // 200-period, zero when the series is shorter than 200 rows
	RSI       float64 // 14-period
	ATR       float64 // 14-period
	VolumeAvg float64 // 20-period simple average of volume
}

// IndicatorSet is the two-row slice of indicator history the detectors
// consult: the latest bar and the one before it.
type IndicatorSet struct {
	Latest   IndicatorRow
	Previous IndicatorRow
}
