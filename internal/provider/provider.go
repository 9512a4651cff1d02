package provider

import (
	"context"
	"log"
	"sync"
	"time"

	"saftrade/internal/model"
)

// Breaker is the circuit-breaker latch shared across a batch run. Once
// tripped it stays tripped for the remainder of the process; there is no
// half-open state. Safe for concurrent use.
type Breaker struct {
	mu      sync.Mutex
	tripped bool
}

// NewBreaker creates the latch. It starts tripped when the primary source
// has no credential configured.
func NewBreaker(primaryConfigured bool) *Breaker {
	return &Breaker{tripped: !primaryConfigured}
}

// Trip latches the breaker.
func (b *Breaker) Trip() {
	b.mu.Lock()
	b.tripped = true
	b.mu.Unlock()
}

// Tripped reports the latch state.
func (b *Breaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped
}

// historySource is the single-symbol history contract both clients share.
type historySource interface {
	History(ctx context.Context, symbol, fromDate, toDate string) ([]model.Candle, error)
}

// DataProvider presents one fetch contract resilient to primary-source
// outages: GoAPI first, Yahoo Finance as fallback, with the breaker
// redirecting everything to the fallback after a primary transport failure.
type DataProvider struct {
	primary   historySource
	secondary historySource
	breaker   *Breaker
}

// NewDataProvider wires the two sources around the given breaker.
func NewDataProvider(primary, secondary historySource, breaker *Breaker) *DataProvider {
	if breaker.Tripped() {
		log.Println("[WARN] primary credential missing, data provider starting in fallback mode")
	}
	return &DataProvider{primary: primary, secondary: secondary, breaker: breaker}
}

// DefaultRange returns the provider-chosen fetch window: one year back
// through tomorrow. The end date is a day ahead because the fallback
// source's end is exclusive.
func DefaultRange() (fromDate, toDate string) {
	now := time.Now()
	return now.AddDate(-1, 0, 0).Format("2006-01-02"), now.AddDate(0, 0, 1).Format("2006-01-02")
}

// Fetch returns daily history for symbol, never failing outward: if both
// sources come up short the result is an empty series. An empty primary
// result falls back for this call only; a primary error trips the breaker
// for the rest of the run.
func (p *DataProvider) Fetch(ctx context.Context, symbol, fromDate, toDate string) []model.Candle {
	if fromDate == "" || toDate == "" {
		fromDate, toDate = DefaultRange()
	}

	if p.breaker.Tripped() {
		log.Printf("[INFO] circuit breaker active: skipping goapi for %s", symbol)
		return p.fallback(ctx, symbol, fromDate, toDate)
	}

	candles, err := p.primary.History(ctx, symbol, fromDate, toDate)
	if err != nil {
		log.Printf("[ERROR] goapi failure for %s: %v, tripping circuit breaker", symbol, err)
		p.breaker.Trip()
		return p.fallback(ctx, symbol, fromDate, toDate)
	}
	if len(candles) > 0 {
		return candles
	}

	// A single missing ticker is not a systemic failure: fall back for
	// this call without latching.
	log.Printf("[WARN] goapi returned no data for %s, using fallback for this call", symbol)
	return p.fallback(ctx, symbol, fromDate, toDate)
}

func (p *DataProvider) fallback(ctx context.Context, symbol, fromDate, toDate string) []model.Candle {
	candles, err := p.secondary.History(ctx, symbol, fromDate, toDate)
	if err != nil {
		log.Printf("[ERROR] fallback source failed for %s: %v", symbol, err)
		return nil
	}
	return candles
}
