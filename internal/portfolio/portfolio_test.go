package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
)

func fixedQuote(prices map[string]float64) QuoteFunc {
	return func(ticker string) float64 { return prices[ticker] }
}

func TestNewManager_SeedsInitialState(t *testing.T) {
	st := store.NewMemory()
	m, err := NewManager(st)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	pos := m.Positions()
	if len(pos) != 1 || pos[0].Account != 1 || pos[0].Ticker != "TQQQ" || pos[0].Shares != 0 {
		t.Errorf("unexpected seed positions: %+v", pos)
	}
	if m.Cash() != 16_000_000 {
		t.Errorf("seed cash: want 16000000, got %.0f", m.Cash())
	}

	// A second manager over the same store must not reseed.
	m.Deposit(1000)
	m2, err := NewManager(st)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m2.Cash() != 16_001_000 {
		t.Errorf("reload cash: want 16001000, got %.0f", m2.Cash())
	}
}

func TestCashOperations(t *testing.T) {
	m, _ := NewManager(store.NewMemory())
	if err := m.Withdraw(20_000_000); err == nil {
		t.Error("overdraft must be rejected")
	}
	if err := m.Deposit(-5); err == nil {
		t.Error("negative deposit must be rejected")
	}
	if err := m.Withdraw(6_000_000); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if m.Cash() != 10_000_000 {
		t.Errorf("cash after withdraw: want 10000000, got %.0f", m.Cash())
	}
}

func TestEvaluateTiers(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		level   int
		shares  float64
		alerts  int
		qty     int
	}{
		{"crossed first tier", 61, 0, 120, 1, 12}, // +22% -> tier 1
		{"just under the tier", 59, 0, 120, 0, 0}, // +18% -> tier 0
		{"tier already taken", 61, 1, 120, 0, 0},
		{"drawdown stays silent", 47.5, 0, 120, 0, 0}, // -5% -> tier -1
		{"no shares no alert", 61, 0, 0, 0, 0},
		{"two tiers at once", 95, 0, 120, 1, 12}, // +90% -> tier 4 > 0
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []model.Position{{Account: 1, Ticker: "TQQQ", Shares: tt.shares, AvgPrice: 50, Level: tt.level}}
			alerts := EvaluateTiers(positions, fixedQuote(map[string]float64{"TQQQ": tt.current}))
			if len(alerts) != tt.alerts {
				t.Fatalf("want %d alerts, got %d", tt.alerts, len(alerts))
			}
			if tt.alerts > 0 && alerts[0].SuggestedQty != tt.qty {
				t.Errorf("suggested qty: want %d, got %d", tt.qty, alerts[0].SuggestedQty)
			}
		})
	}
}

func TestEvaluateTiers_DoesNotAdvanceLevel(t *testing.T) {
	positions := []model.Position{{Account: 1, Ticker: "TQQQ", Shares: 100, AvgPrice: 50, Level: 0}}
	quote := fixedQuote(map[string]float64{"TQQQ": 61})

	first := EvaluateTiers(positions, quote)
	second := EvaluateTiers(positions, quote)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("alert should repeat until the user advances the level: %d then %d", len(first), len(second))
	}
}

func TestEvaluateTiers_ZeroAvgPriceSkipped(t *testing.T) {
	positions := []model.Position{{Account: 1, Ticker: "TQQQ", Shares: 100, AvgPrice: 0, Level: 0}}
	alerts := EvaluateTiers(positions, fixedQuote(map[string]float64{"TQQQ": 61}))
	if len(alerts) != 0 {
		t.Errorf("zero avg price must not alert (or divide), got %d alerts", len(alerts))
	}
}

func TestAdvanceLevel(t *testing.T) {
	m, _ := NewManager(store.NewMemory())
	m.SetPosition(1, "TQQQ", 100, 50)

	if err := m.AdvanceLevel(1, 0); err == nil {
		t.Error("level must strictly increase")
	}
	if err := m.AdvanceLevel(1, 1); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := m.Positions()[0].Level; got != 1 {
		t.Errorf("level: want 1, got %d", got)
	}
	if err := m.AdvanceLevel(9, 1); err == nil {
		t.Error("unknown account must error")
	}
}

func TestSummarize(t *testing.T) {
	positions := []model.Position{
		{Account: 1, Ticker: "TQQQ", Shares: 10, AvgPrice: 50},
		{Account: 2, Ticker: "QLD", Shares: 20, AvgPrice: 80},
	}
	quote := fixedQuote(map[string]float64{"TQQQ": 60, "QLD": 80})
	sum := Summarize(positions, quote, 1450, 1_000_000)

	wantInvested := (10*50 + 20*80) * 1450.0
	wantEval := (10*60 + 20*80) * 1450.0
	if math.Abs(sum.InvestedKRW-wantInvested) > 1e-6 || math.Abs(sum.EvalKRW-wantEval) > 1e-6 {
		t.Errorf("invested/eval: want %.0f/%.0f, got %.0f/%.0f", wantInvested, wantEval, sum.InvestedKRW, sum.EvalKRW)
	}
	if math.Abs(sum.TotalAssetKRW-(1_000_000+wantEval)) > 1e-6 {
		t.Errorf("total asset: want %.0f, got %.0f", 1_000_000+wantEval, sum.TotalAssetKRW)
	}

	empty := Summarize(nil, quote, 1450, 500)
	if empty.ReturnRate != 0 {
		t.Errorf("empty portfolio return rate: want 0, got %v", empty.ReturnRate)
	}
}

func TestTradeLog(t *testing.T) {
	m, _ := NewManager(store.NewMemory())
	d := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	m.AppendLog(model.LogEntry{Date: d, Account: 1, Action: "Buy", Qty: 10, Price: 60})
	m.AppendLog(model.LogEntry{Date: d, Account: 1, Action: "Sell(TP)", Qty: 2, Price: 72})

	entries, err := m.Log()
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(entries) != 2 || entries[0].Amount != 600 || entries[1].Amount != 144 {
		t.Errorf("unexpected log: %+v", entries)
	}

	if err := m.DropLastLog(); err != nil {
		t.Fatalf("drop last: %v", err)
	}
	entries, _ = m.Log()
	if len(entries) != 1 || entries[0].Action != "Buy" {
		t.Errorf("after drop: %+v", entries)
	}
}
