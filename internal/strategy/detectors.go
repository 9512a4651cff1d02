package strategy

import "saftrade/internal/model"

// Strategy thresholds.
const (
	rsiOversold          = 30.0
	volumeSpikeFactor    = 1.2
	volumeBreakoutFactor = 2.0
	minPriceChange       = 0.03
	strongCloseThreshold = 0.90
	bsjpVolumeFactor     = 1.0
)

// bar pairs a candle with its computed indicator row.
type bar struct {
	candle model.Candle
	ind    model.IndicatorRow
}

// detectTrendSwing checks for a pullback entry in an established uptrend:
// price above the long EMA, momentum from an RSI bounce off oversold or a
// golden cross, confirmed by above-average volume.
func detectTrendSwing(latest, prev bar) model.DetectorResult {
	uptrend := latest.ind.EMALong > 0 && latest.candle.Close > latest.ind.EMALong
	rsiBounce := prev.ind.RSI < rsiOversold && latest.ind.RSI >= rsiOversold
	goldenCross := prev.ind.EMAShort < prev.ind.EMAMedium && latest.ind.EMAShort > latest.ind.EMAMedium
	volumeSpike := latest.ind.VolumeAvg > 0 &&
		float64(latest.candle.Volume) > latest.ind.VolumeAvg*volumeSpikeFactor

	return model.DetectorResult{
		Fired: uptrend && (rsiBounce || goldenCross) && volumeSpike,
		Subsignals: map[string]bool{
			"uptrend":      uptrend,
			"rsi_bounce":   rsiBounce,
			"golden_cross": goldenCross,
			"volume_spike": volumeSpike,
		},
	}
}

// detectVolatilityBreakout checks for a high-volume green candle moving more
// than 3% day over day. Returns the day-over-day change alongside the result
// since the verdict reports it.
func detectVolatilityBreakout(latest, prev bar) (model.DetectorResult, float64) {
	var priceChangePct float64
	if prev.candle.Close > 0 {
		priceChangePct = (latest.candle.Close - prev.candle.Close) / prev.candle.Close
	}
	breakoutVolume := latest.ind.VolumeAvg > 0 &&
		float64(latest.candle.Volume) > latest.ind.VolumeAvg*volumeBreakoutFactor
	green := latest.candle.Close > latest.candle.Open

	return model.DetectorResult{
		Fired:      breakoutVolume && priceChangePct > minPriceChange && green,
		Subsignals: map[string]bool{"vol_breakout": breakoutVolume && priceChangePct > minPriceChange && green},
	}, priceChangePct
}

// detectBSJP checks the overnight-carry setup: a green candle closing in the
// top tenth of its range on above-average volume, above the short EMA. A
// doji or flat day (zero range) never qualifies.
func detectBSJP(latest bar) model.DetectorResult {
	green := latest.candle.Close > latest.candle.Open

	dayRange := latest.candle.High - latest.candle.Low
	strongClose := false
	if dayRange > 0 {
		strongClose = (latest.candle.Close-latest.candle.Low)/dayRange >= strongCloseThreshold
	}

	volumeOK := latest.ind.VolumeAvg > 0 &&
		float64(latest.candle.Volume) > latest.ind.VolumeAvg*bsjpVolumeFactor
	shortTrend := latest.ind.EMAShort > 0 && latest.candle.Close > latest.ind.EMAShort

	fired := green && strongClose && volumeOK && shortTrend
	return model.DetectorResult{
		Fired:      fired,
		Subsignals: map[string]bool{"bsjp": fired},
	}
}
