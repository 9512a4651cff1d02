package model

import "sort"

// Candle is one trading day for one symbol. Identity key: (Symbol, Date).
type Candle struct {
	Symbol string
	Date   string // YYYY-MM-DD
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	// Present only on bulk quote responses; zero otherwise.
	Change    float64
	ChangePct float64
}

// SortCandles orders a series ascending by date. Indicator computation
// requires strictly increasing dates; callers sort before analysis.
func SortCandles(candles []Candle) {
	sort.Slice(candles, func(i, j int) bool { return candles[i].Date < candles[j].Date })
}
