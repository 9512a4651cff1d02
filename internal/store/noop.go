package store

import "saftrade/internal/model"

// NoopStore is a no-op implementation used when SQLite is unavailable.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) UpsertCandles(_ []model.Candle) error           { return nil }
func (n *NoopStore) History(_ string) ([]model.Candle, error)       { return nil, nil }
func (n *NoopStore) LatestCandle(_ string) (*model.Candle, error)   { return nil, nil }
func (n *NoopStore) Close() error                                   { return nil }
