package notifier

import (
	"strings"
	"testing"

	"saftrade/internal/model"
)

func TestFormatAlert(t *testing.T) {
	verdict := model.Verdict{
		SignalType: "BSJP (Overnight Gap)",
		Date:       "2025-01-03",
		Close:      106,
		Indicators: model.ReportIndicators{RSI: 62.5, ATR: 1.8, VolumeRatio: 1.5, PriceChangePct: 0.06},
	}
	plan := model.TradePlan{Entry: 106, StopLoss: 101, TakeProfit: 116, RiskReward: "1:2"}

	msg := FormatAlert("SCMA", verdict, plan, "WARNING: High Risk. Gap play only.")
	for _, want := range []string{
		"SCMA",
		"BSJP (Overnight Gap)",
		"Entry: 106.00",
		"Stop Loss: 101.00",
		"Take Profit: 116.00",
		"1:2",
		"WARNING: High Risk",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q in:\n%s", want, msg)
		}
	}
}
