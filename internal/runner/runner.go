package runner

import (
	"context"
	"log"

	"saftrade/internal/model"
	"saftrade/internal/provider"
	"saftrade/internal/strategy"
)

type dataSource interface {
	Fetch(ctx context.Context, symbol, fromDate, toDate string) []model.Candle
}

type candleStore interface {
	UpsertCandles(candles []model.Candle) error
}

type signalValidator interface {
	ValidateSignal(ctx context.Context, ticker string, verdict model.Verdict) model.Validation
}

type alertSender interface {
	SendAlert(ctx context.Context, ticker string, verdict model.Verdict, plan model.TradePlan, analysis string)
}

type auditLog interface {
	Record(ticker string, verdict model.Verdict, aiValid bool, plan model.TradePlan) error
}

// Runner drives one batch pass over the watchlist: fetch history, persist
// it, analyze, validate fired signals with the AI layer, and alert on the
// ones that survive. One ticker failing never stops the batch.
type Runner struct {
	source    dataSource
	store     candleStore
	validator signalValidator
	notifier  alertSender
	audit     auditLog
	watchlist []string
}

func New(source dataSource, store candleStore, validator signalValidator, notifier alertSender, audit auditLog, watchlist []string) *Runner {
	return &Runner{
		source:    source,
		store:     store,
		validator: validator,
		notifier:  notifier,
		audit:     audit,
		watchlist: watchlist,
	}
}

// RunBatch processes every watchlist ticker sequentially.
func (r *Runner) RunBatch(ctx context.Context) {
	log.Printf("[INFO] batch run starting for %d tickers", len(r.watchlist))
	fromDate, toDate := provider.DefaultRange()
	fired := 0
	for _, ticker := range r.watchlist {
		if ctx.Err() != nil {
			log.Printf("[WARN] batch run aborted: %v", ctx.Err())
			return
		}
		if r.processTicker(ctx, ticker, fromDate, toDate) {
			fired++
		}
	}
	log.Printf("[INFO] batch run finished, %d signal(s) fired", fired)
}

func (r *Runner) processTicker(ctx context.Context, ticker, fromDate, toDate string) bool {
	candles := r.source.Fetch(ctx, ticker, fromDate, toDate)
	if len(candles) == 0 {
		log.Printf("[WARN] no data for %s, skipping", ticker)
		return false
	}

	if err := r.store.UpsertCandles(candles); err != nil {
		log.Printf("[ERROR] persist candles for %s: %v", ticker, err)
	}

	model.SortCandles(candles)
	verdict := strategy.Analyze(candles)
	if !verdict.Valid {
		log.Printf("[INFO] %s: %s", ticker, verdict.Reason)
		return false
	}

	log.Printf("[INFO] %s fired %s, sending for AI validation", ticker, verdict.SignalType)
	validation := r.validator.ValidateSignal(ctx, ticker, verdict)

	if err := r.audit.Record(ticker, verdict, validation.Valid, validation.Plan); err != nil {
		log.Printf("[ERROR] audit log for %s: %v", ticker, err)
	}

	if !validation.Valid {
		log.Printf("[INFO] %s rejected by AI validation: %s", ticker, validation.Analysis)
		return false
	}

	r.notifier.SendAlert(ctx, ticker, verdict, validation.Plan, validation.Analysis)
	return true
}
