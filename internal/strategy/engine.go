package strategy

import (
	"strings"

	"saftrade/internal/calculator"
	"saftrade/internal/model"
)

// Indicator windows.
const (
	emaShortPeriod  = 20
	emaMediumPeriod = 50
	emaLongPeriod   = 200
	rsiPeriod       = 14
	atrPeriod       = 14
	volumeAvgPeriod = 20
)

// labelRule maps a fired detector to its label. The table order is the
// precedence order: the first rule whose detector fired wins, and the
// suffix is appended when the named secondary detector also fired.
type labelRule struct {
	detector  string
	label     string
	secondary string
	suffix    string
}

var labelTable = []labelRule{
	{detector: "bsjp", label: "BSJP (Overnight Gap)", secondary: "breakout", suffix: " + Breakout"},
	{detector: "breakout", label: "Volatility Breakout", secondary: "swing", suffix: " + Swing"},
	{detector: "swing", label: "Trend Swing"},
}

var detectorMisses = []struct {
	detector string
	miss     string
}{
	{"swing", "Not Swing Setup"},
	{"breakout", "Not Volatility Breakout"},
	{"bsjp", "Not BSJP"},
}

func composeLabel(fired map[string]bool) string {
	for _, rule := range labelTable {
		if !fired[rule.detector] {
			continue
		}
		if rule.secondary != "" && fired[rule.secondary] {
			return rule.label + rule.suffix
		}
		return rule.label
	}
	return "None"
}

// Analyze evaluates a candle series against the three signal detectors and
// returns a structured verdict. Pure: no I/O, deterministic for a given
// series. The series must be sorted ascending by date; indicators are
// computed over the full history and only the last two bars are judged.
func Analyze(candles []model.Candle) model.Verdict {
	if len(candles) < 2 {
		v := model.Verdict{
			SignalType: "None",
			Reason:     "insufficient history: need at least 2 candles",
			Signals:    map[string]bool{},
		}
		if len(candles) == 1 {
			v.Symbol = candles[0].Symbol
			v.Date = candles[0].Date
			v.Close = candles[0].Close
		}
		return v
	}

	closes := calculator.ExtractCloses(candles)
	volumes := calculator.ExtractVolumes(candles)

	// The long EMA is computed only with enough history; the detectors
	// treat a zero long EMA as an unset gate, never an error.
	var emaLong []float64
	if len(candles) >= emaLongPeriod {
		emaLong = calculator.EMASeries(closes, emaLongPeriod)
	} else {
		emaLong = make([]float64, len(candles))
	}
	emaMedium := calculator.EMASeries(closes, emaMediumPeriod)
	emaShort := calculator.EMASeries(closes, emaShortPeriod)
	rsi := calculator.RSISeries(closes, rsiPeriod)
	atr := calculator.ATRSeries(candles, atrPeriod)
	volAvg := calculator.SMASeries(volumes, volumeAvgPeriod)

	rowAt := func(i int) bar {
		return bar{
			candle: candles[i],
			ind: model.IndicatorRow{
				EMAShort:  emaShort[i],
				EMAMedium: emaMedium[i],
				EMALong:   emaLong[i],
				RSI:       rsi[i],
				ATR:       atr[i],
				VolumeAvg: volAvg[i],
			},
		}
	}
	latest := rowAt(len(candles) - 1)
	prev := rowAt(len(candles) - 2)

	swing := detectTrendSwing(latest, prev)
	breakout, priceChangePct := detectVolatilityBreakout(latest, prev)
	bsjp := detectBSJP(latest)

	fired := map[string]bool{
		"swing":    swing.Fired,
		"breakout": breakout.Fired,
		"bsjp":     bsjp.Fired,
	}
	valid := swing.Fired || breakout.Fired || bsjp.Fired
	label := composeLabel(fired)

	signals := map[string]bool{}
	for _, res := range []model.DetectorResult{swing, breakout, bsjp} {
		for k, v := range res.Subsignals {
			signals[k] = v
		}
	}

	var volumeRatio float64
	if latest.ind.VolumeAvg > 0 {
		volumeRatio = float64(latest.candle.Volume) / latest.ind.VolumeAvg
	}

	reason := "Valid: " + label
	if !valid {
		var misses []string
		for _, m := range detectorMisses {
			if !fired[m.detector] {
				misses = append(misses, m.miss)
			}
		}
		reason = strings.Join(misses, "; ")
	}

	return model.Verdict{
		Valid:      valid,
		SignalType: label,
		Symbol:     latest.candle.Symbol,
		Date:       latest.candle.Date,
		Close:      latest.candle.Close,
		Indicators: model.ReportIndicators{
			EMALong:        latest.ind.EMALong,
			RSI:            latest.ind.RSI,
			ATR:            latest.ind.ATR,
			VolumeRatio:    volumeRatio,
			PriceChangePct: priceChangePct,
		},
		Signals: signals,
		Reason:  reason,
	}
}
