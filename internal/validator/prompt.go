package validator

import (
	"fmt"
	"strings"

	"saftrade/internal/model"
)

const systemPrompt = "You are a Senior Hedge Fund Analyst. You are skeptical, risk-averse, and only approve high-probability setups."

// buildPrompt renders the analyst prompt for one detected setup.
func buildPrompt(ticker string, v model.Verdict) string {
	trend := "Down"
	if v.Signals["uptrend"] {
		trend = "Up"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this trading setup for %s (Indonesian Stock).\n\n", ticker)
	fmt.Fprintf(&b, "Signal Type: %s\n\n", v.SignalType)
	b.WriteString("Technical Data:\n")
	fmt.Fprintf(&b, "- Close: %.2f\n", v.Close)
	fmt.Fprintf(&b, "- EMA200: %.2f (Trend: %s)\n", v.Indicators.EMALong, trend)
	fmt.Fprintf(&b, "- RSI(14): %.2f\n", v.Indicators.RSI)
	fmt.Fprintf(&b, "- ATR: %.2f\n", v.Indicators.ATR)
	fmt.Fprintf(&b, "- Volume Ratio: %.2fx vs Avg (Breakout: %v)\n", v.Indicators.VolumeRatio, v.Signals["vol_breakout"])
	fmt.Fprintf(&b, "- Price Change: %.2f%%\n\n", v.Indicators.PriceChangePct*100)
	b.WriteString(`Task:
1. Validate the setup.
   - If "Volatility Breakout":
     * ACCEPT the trade even if it looks risky/overbought, UNLESS it is essentially a guaranteed loss (e.g. falling knife).
     * If risky, set Valid=True but include "WARNING: High Risk" in the analysis.
     * Focus on managing the risk via Stop Loss rather than rejecting the trade.
   - If "Trend Swing": Is the trend healthy?
2. If Valid == true, provide a Trade Plan.
   - Entry: Current Close
   - Stop Loss:
     * For Breakouts: TIGHT SL (e.g., Low of Day or -3% from entry).
     * For Swing: ATR-based (2x ATR).
   - Take Profit: 1:2 Risk-Reward minimum.

Output JSON Format ONLY:
{
    "valid": boolean,
    "analysis": "Short concise reasoning (max 2 sentences). Start with 'WARNING:' if high risk.",
    "trade_plan": {
        "entry": float,
        "stop_loss": float,
        "take_profit": float,
        "risk_reward": string
    }
}
`)
	return b.String()
}
