package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"saftrade/internal/audit"
	"saftrade/internal/config"
	"saftrade/internal/notifier"
	"saftrade/internal/provider"
	"saftrade/internal/runner"
	"saftrade/internal/scheduler"
	"saftrade/internal/store"
	"saftrade/internal/validator"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Saftrade starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init data provider: GoAPI primary with Yahoo Finance fallback
	primary := provider.NewGoAPIClient(cfg.GoAPI.BaseURL, cfg.GoAPI.APIKey, cfg.Proxy)
	secondary := provider.NewYahooClient(cfg.Yahoo.Suffix, cfg.Proxy)
	breaker := provider.NewBreaker(cfg.GoAPI.APIKey != "")
	dataProvider := provider.NewDataProvider(primary, secondary, breaker)

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init AI validator
	val := validator.New(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init audit log
	auditLog := audit.NewCSVLog(cfg.Audit.CSVPath)

	run := runner.New(dataProvider, st, val, tn, auditLog, cfg.Watchlist)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, run)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily batch now")
		go sched.RunNow()
	}

	log.Println("[INFO] Saftrade is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] Saftrade stopped")
}
