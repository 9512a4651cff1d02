package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"saftrade/internal/model"
)

var header = []string{"date", "ticker", "close", "signal_type", "ai_valid", "entry", "stop_loss", "take_profit"}

// CSVLog appends one row per accepted signal to a persistent CSV file. The
// header is written once, when the file is first created.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Record appends one signal row.
func (l *CSVLog) Record(ticker string, verdict model.Verdict, aiValid bool, plan model.TradePlan) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(l.path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	row := []string{
		verdict.Date,
		ticker,
		formatFloat(verdict.Close),
		verdict.SignalType,
		strconv.FormatBool(aiValid),
		formatFloat(plan.Entry),
		formatFloat(plan.StopLoss),
		formatFloat(plan.TakeProfit),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
