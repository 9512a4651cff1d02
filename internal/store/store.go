package store

import "saftrade/internal/model"

// Store persists daily candles keyed by (symbol, date).
type Store interface {
	// UpsertCandles inserts or updates a batch; idempotent on repeated
	// delivery of the same candle.
	UpsertCandles(candles []model.Candle) error
	// History returns all stored candles for a symbol, ascending by date.
	History(symbol string) ([]model.Candle, error)
	// LatestCandle returns the most recent candle for a symbol, or nil.
	LatestCandle(symbol string) (*model.Candle, error)
	Close() error
}
