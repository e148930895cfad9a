package render

import (
	"math"
	"strings"
	"testing"

	"signal-relay/internal/domain"
)

func TestSignalIsDeterministic(t *testing.T) {
	sig := domain.SignalDescription{
		Instrument: "GBPUSD",
		Direction:  domain.DirectionSell,
		EntryPrice: 1.2750,
		StopLoss:   1.2800,
		TakeProfit: 1.2700,
		Timeframe:  "4h",
		Strategy:   "Mean Reversion",
		AIVerdict:  "Bearish momentum confirmed",
		RiskReward: 1.0,
	}

	first := Signal(sig)
	for i := 0; i < 10; i++ {
		if got := Signal(sig); got != first {
			t.Fatalf("render not deterministic on call %d:\n%s\n---\n%s", i, first, got)
		}
	}
}

func TestSignalSectionOrderAndContent(t *testing.T) {
	sig := AdjustLevels(domain.SignalDescription{
		Instrument: "EURUSD",
		Direction:  domain.DirectionBuy,
		EntryPrice: 1.1000,
		StopLoss:   1.0950,
		Timeframe:  "1h",
		Strategy:   "Momentum Breakout",
	})
	text := Signal(sig)

	for _, want := range []string{"EURUSD", "BUY", "1.1000", "1.0950", "1.1050"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered text:\n%s", want, text)
		}
	}

	order := []string{"EURUSD", "Entry:", "Stop Loss:", "Take Profit:", "Timeframe:", "Strategy:", "Trade at your own risk"}
	last := -1
	for _, section := range order {
		idx := strings.Index(text, section)
		if idx < 0 {
			t.Fatalf("missing section %q:\n%s", section, text)
		}
		if idx < last {
			t.Fatalf("section %q out of order:\n%s", section, text)
		}
		last = idx
	}
}

func TestSignalOptionalSections(t *testing.T) {
	sig := domain.SignalDescription{
		Instrument: "USDJPY",
		Direction:  domain.DirectionBuy,
		EntryPrice: 151.25,
	}
	text := Signal(sig)

	if strings.Contains(text, "AI Verdict") {
		t.Fatalf("verdict section rendered without a verdict:\n%s", text)
	}
	if strings.Contains(text, "Strategy:") {
		t.Fatalf("strategy section rendered without a strategy:\n%s", text)
	}
	if !strings.Contains(text, "Timeframe: "+domain.DefaultTimeframe) {
		t.Fatalf("expected defaulted timeframe:\n%s", text)
	}
	// JPY convention: two decimals
	if !strings.Contains(text, "Entry: 151.25") {
		t.Fatalf("expected JPY two-decimal quoting:\n%s", text)
	}
}

func TestAdjustLevelsBuySymmetry(t *testing.T) {
	for _, risk := range []float64{0.0010, 0.0050, 0.0200} {
		sig := AdjustLevels(domain.SignalDescription{
			Instrument: "EURUSD",
			Direction:  domain.DirectionBuy,
			EntryPrice: 1.1000,
			StopLoss:   1.1000 - risk,
		})
		down := sig.EntryPrice - sig.StopLoss
		up := sig.TakeProfit - sig.EntryPrice
		if math.Abs(down-up) > 1e-9 {
			t.Fatalf("asymmetric levels for risk %v: down=%v up=%v", risk, down, up)
		}
	}
}

func TestAdjustLevelsSellSymmetry(t *testing.T) {
	sig := AdjustLevels(domain.SignalDescription{
		Instrument: "EURUSD",
		Direction:  domain.DirectionSell,
		EntryPrice: 1.1000,
		StopLoss:   1.1040,
	})
	if math.Abs((sig.StopLoss-sig.EntryPrice)-(sig.EntryPrice-sig.TakeProfit)) > 1e-9 {
		t.Fatalf("asymmetric sell levels: sl=%v entry=%v tp=%v", sig.StopLoss, sig.EntryPrice, sig.TakeProfit)
	}
	if sig.StopLoss <= sig.EntryPrice || sig.TakeProfit >= sig.EntryPrice {
		t.Fatalf("sell levels on wrong side: sl=%v entry=%v tp=%v", sig.StopLoss, sig.EntryPrice, sig.TakeProfit)
	}
}

func TestAdjustLevelsFromPipCount(t *testing.T) {
	sig := AdjustLevels(domain.SignalDescription{
		Instrument: "EURUSD",
		Direction:  domain.DirectionBuy,
		EntryPrice: 1.1000,
		RiskPips:   50,
	})
	if math.Abs(sig.StopLoss-1.0950) > 1e-9 {
		t.Fatalf("expected stop 1.0950 from 50 pips, got %v", sig.StopLoss)
	}
	if math.Abs(sig.TakeProfit-1.1050) > 1e-9 {
		t.Fatalf("expected target 1.1050 from 50 pips, got %v", sig.TakeProfit)
	}
}

func TestAdjustLevelsNoRiskLeavesUnchanged(t *testing.T) {
	in := domain.SignalDescription{
		Instrument: "EURUSD",
		Direction:  domain.DirectionBuy,
		EntryPrice: 1.1000,
	}
	out := AdjustLevels(in)
	if out != in {
		t.Fatalf("expected unchanged description, got %+v", out)
	}
}
