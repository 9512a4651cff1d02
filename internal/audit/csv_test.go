package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saftrade/internal/model"
)

func TestRecordWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.csv")

	verdict := model.Verdict{
		Date:       "2025-01-02",
		Close:      1156,
		SignalType: "Volatility Breakout + Swing",
	}
	plan := model.TradePlan{Entry: 1156, StopLoss: 1100, TakeProfit: 1250}

	log := NewCSVLog(path)
	if err := log.Record("BBCA", verdict, true, plan); err != nil {
		t.Fatalf("first record: %v", err)
	}

	// Reopen to simulate a new process appending to an existing file.
	log = NewCSVLog(path)
	verdict.Date = "2025-01-03"
	if err := log.Record("TLKM", verdict, false, plan); err != nil {
		t.Fatalf("second record: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "date,ticker,close,signal_type,ai_valid,entry,stop_loss,take_profit" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2025-01-02,BBCA,1156,") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[2], ",TLKM,") || !strings.Contains(lines[2], ",false,") {
		t.Errorf("unexpected second row: %q", lines[2])
	}
	if strings.Count(string(raw), "date,ticker") != 1 {
		t.Errorf("header written more than once:\n%s", raw)
	}
}
