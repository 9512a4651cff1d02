package notifier

import (
	"fmt"
	"strings"

	"saftrade/internal/model"
)

// FormatAlert formats a validated signal into a Telegram message.
func FormatAlert(ticker string, verdict model.Verdict, plan model.TradePlan, analysis string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 <b>Signal: %s</b> | %s\n\n", ticker, verdict.Date)
	fmt.Fprintf(&b, "Setup: %s\n", verdict.SignalType)
	fmt.Fprintf(&b, "Close: %.2f\n", verdict.Close)
	fmt.Fprintf(&b, "RSI(14): %.1f | ATR: %.1f\n", verdict.Indicators.RSI, verdict.Indicators.ATR)
	fmt.Fprintf(&b, "Volume: %.1fx avg | Change: %+.2f%%\n\n", verdict.Indicators.VolumeRatio, verdict.Indicators.PriceChangePct*100)

	b.WriteString("📋 <b>Trade Plan:</b>\n")
	fmt.Fprintf(&b, "  Entry: %.2f\n", plan.Entry)
	fmt.Fprintf(&b, "  Stop Loss: %.2f\n", plan.StopLoss)
	fmt.Fprintf(&b, "  Take Profit: %.2f\n", plan.TakeProfit)
	if plan.RiskReward != "" {
		fmt.Fprintf(&b, "  Risk/Reward: %s\n", plan.RiskReward)
	}

	if analysis != "" {
		fmt.Fprintf(&b, "\n🤖 %s\n", analysis)
	}

	return b.String()
}
