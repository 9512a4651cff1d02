package model

// DetectorResult is the structured output of a single signal detector.
type DetectorResult struct {
	Fired      bool
	Subsignals map[string]bool
}

// ReportIndicators is the indicator subset surfaced in a verdict.
type ReportIndicators struct {
	EMALong        float64 `json:"ema_200"`
	RSI            float64 `json:"rsi"`
	ATR            float64 `json:"atr"`
	VolumeRatio    float64 `json:"volume_ratio"`
	PriceChangePct float64 `json:"price_change"`
}

// Verdict is the final output of the technical analyzer for one series.
type Verdict struct {
	Valid      bool             `json:"valid"`
	SignalType string           `json:"signal_type"`
	Symbol     string           `json:"symbol"`
	Date       string           `json:"date"`
	Close      float64          `json:"close"`
	Indicators ReportIndicators `json:"indicators"`
	Signals    map[string]bool  `json:"signals"`
	Reason     string           `json:"reason"`
}

// TradePlan is the entry/exit plan returned by the AI validator.
type TradePlan struct {
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	RiskReward string  `json:"risk_reward"`
}

// Validation is the AI validator's judgement on a detected setup.
type Validation struct {
	Valid    bool      `json:"valid"`
	Analysis string    `json:"analysis"`
	Plan     TradePlan `json:"trade_plan"`
}
