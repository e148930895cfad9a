// Package render turns a signal description into the display text of the
// signal view. Rendering is a pure function: no I/O, no clock, no
// randomness, so the dispatcher and the interaction flow always produce
// byte-identical text for the same description.
package render

import (
	"fmt"
	"math"
	"strings"

	"signal-relay/internal/domain"
)

// AdjustLevels fills in the missing stop-loss or take-profit at a distance
// symmetric to the known risk. The risk distance is taken, in order of
// preference, from an explicit pip count (converted via the instrument's
// pip size), from the stop-loss distance, or from the take-profit distance.
// For a buy: stop = entry - risk, target = entry + risk; a sell inverts the
// signs. A description with no usable risk level is returned unchanged.
func AdjustLevels(sig domain.SignalDescription) domain.SignalDescription {
	if sig.EntryPrice <= 0 {
		return sig
	}
	if sig.RiskPips <= 0 && sig.StopLoss > 0 && sig.TakeProfit > 0 {
		// Both levels supplied explicitly, nothing to mirror.
		return sig
	}

	risk := 0.0
	switch {
	case sig.RiskPips > 0:
		risk = sig.RiskPips * domain.ConventionFor(sig.Instrument).PipSize
	case sig.StopLoss > 0:
		risk = math.Abs(sig.EntryPrice - sig.StopLoss)
	case sig.TakeProfit > 0:
		risk = math.Abs(sig.TakeProfit - sig.EntryPrice)
	}
	if risk <= 0 {
		return sig
	}

	sign := 1.0
	if sig.Direction == domain.DirectionSell {
		sign = -1.0
	}
	sig.StopLoss = sig.EntryPrice - sign*risk
	sig.TakeProfit = sig.EntryPrice + sign*risk
	return sig
}

// Signal renders the display text for the signal view. Section order is
// fixed: header, action line, price levels, timeframe/strategy, risk
// boilerplate, optional AI verdict.
func Signal(sig domain.SignalDescription) string {
	instrument := strings.ToUpper(strings.TrimSpace(sig.Instrument))
	direction := strings.ToUpper(string(sig.Direction))

	arrow := "\U0001F4C8" // chart increasing
	if sig.Direction == domain.DirectionSell {
		arrow = "\U0001F4C9"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s New Trading Signal\n\n", arrow)
	fmt.Fprintf(&b, "%s — %s\n\n", instrument, direction)

	fmt.Fprintf(&b, "Entry: %s\n", domain.FormatPrice(instrument, sig.EntryPrice))
	if sig.StopLoss > 0 {
		fmt.Fprintf(&b, "Stop Loss: %s\n", domain.FormatPrice(instrument, sig.StopLoss))
	}
	if sig.TakeProfit > 0 {
		fmt.Fprintf(&b, "Take Profit: %s\n", domain.FormatPrice(instrument, sig.TakeProfit))
	}
	b.WriteString("\n")

	timeframe := strings.TrimSpace(sig.Timeframe)
	if timeframe == "" {
		timeframe = domain.DefaultTimeframe
	}
	fmt.Fprintf(&b, "Timeframe: %s\n", timeframe)
	if strategy := strings.TrimSpace(sig.Strategy); strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s\n", strategy)
	}
	if sig.RiskReward > 0 {
		fmt.Fprintf(&b, "Risk/Reward: 1:%.1f\n", sig.RiskReward)
	}
	b.WriteString("\n")

	b.WriteString("⚠️ Trade at your own risk. Never risk more than you can afford to lose.")

	if verdict := strings.TrimSpace(sig.AIVerdict); verdict != "" {
		fmt.Fprintf(&b, "\n\n\U0001F916 AI Verdict: %s", verdict)
	}

	return b.String()
}

// TechnicalCaption is the caption attached to a chart photo.
func TechnicalCaption(instrument, timeframe string) string {
	return fmt.Sprintf("\U0001F4CA %s technical analysis (%s)", strings.ToUpper(strings.TrimSpace(instrument)), timeframe)
}
