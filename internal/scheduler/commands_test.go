package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/collector"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/journal"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/portfolio"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	days := 210
	tqqq := make([]collector.DailyClose, days)
	qqq := make([]collector.DailyClose, days)
	for i := 0; i < days; i++ {
		d := base.AddDate(0, 0, i)
		tqqq[i] = collector.DailyClose{Date: d, Close: 60 + float64(i)*0.05}
		qqq[i] = collector.DailyClose{Date: d, Close: 480 + float64(i)*0.2}
	}
	mock := &collector.MockFetcher{
		Daily: map[string][]collector.DailyClose{
			collector.TickerTQQQ: tqqq,
			collector.TickerQQQ:  qqq,
		},
		Last: map[string]float64{
			collector.TickerTQQQ: 71,
			collector.TickerQQQ:  525,
		},
	}
	cache := collector.NewCache(collector.NewCollector(mock, base, 1450), time.Hour)

	st := store.NewMemory()
	book, err := journal.NewBook(st)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	pf, err := portfolio.NewManager(st)
	if err != nil {
		t.Fatalf("portfolio: %v", err)
	}
	return NewScheduler(context.Background(), cache, book, pf, nil, st)
}

func TestHandleCommand_Signal(t *testing.T) {
	s := newTestScheduler(t)
	reply := s.HandleCommand("/signal")
	if !strings.Contains(reply, "Regime") || !strings.Contains(reply, "RSI(3)") {
		t.Errorf("signal reply missing indicator lines:\n%s", reply)
	}
	// Steady uptrend: the close sits above MA200.
	if !strings.Contains(reply, "Bull") {
		t.Errorf("expected a bull regime on an uptrend:\n%s", reply)
	}
}

func TestHandleCommand_BuyAndPositions(t *testing.T) {
	s := newTestScheduler(t)

	reply := s.HandleCommand("/buy 2025-08-01 100 10")
	if !strings.Contains(reply, "buy #1 saved") {
		t.Fatalf("unexpected buy reply: %s", reply)
	}
	if !strings.Contains(reply, "$106.00") || !strings.Contains(reply, "$94.00") {
		t.Errorf("exit targets missing from reply: %s", reply)
	}

	reply = s.HandleCommand("/positions")
	if !strings.Contains(reply, "#1") {
		t.Errorf("positions should list the record: %s", reply)
	}

	reply = s.HandleCommand("/half 1 106")
	if !strings.Contains(reply, "realized $30.00") {
		t.Errorf("half exit reply: %s", reply)
	}
	// Second half exit on the same record is an invalid transition.
	reply = s.HandleCommand("/half 1 110")
	if !strings.Contains(reply, "❌") {
		t.Errorf("repeat half exit must be rejected: %s", reply)
	}
	reply = s.HandleCommand("/close 1 112")
	if !strings.Contains(reply, "realized $60.00") {
		t.Errorf("full exit reply: %s", reply)
	}
}

func TestHandleCommand_BadInput(t *testing.T) {
	s := newTestScheduler(t)
	for _, cmd := range []string{"/buy", "/buy x y", "/half", "/delete nope", "/level 1", "what"} {
		reply := s.HandleCommand(cmd)
		if reply == "" {
			t.Errorf("command %q: want usage or help reply, got empty", cmd)
		}
	}
}

func TestHandleCommand_PortfolioFlow(t *testing.T) {
	s := newTestScheduler(t)

	s.HandleCommand("/set 1 TQQQ 120 50")
	reply := s.HandleCommand("/tiers")
	// Live TQQQ 71 vs avg 50 is +42%: tier 2.
	if !strings.Contains(reply, "tier 2") || !strings.Contains(reply, "12 sh") {
		t.Errorf("tier alert expected: %s", reply)
	}

	reply = s.HandleCommand("/level 1 2")
	if !strings.Contains(reply, "✅") {
		t.Fatalf("level advance failed: %s", reply)
	}
	reply = s.HandleCommand("/tiers")
	if !strings.Contains(reply, "No tier alerts") {
		t.Errorf("acknowledged tier must stay silent: %s", reply)
	}

	reply = s.HandleCommand("/deposit 500000")
	if !strings.Contains(reply, "16500000") {
		t.Errorf("deposit reply: %s", reply)
	}
	reply = s.HandleCommand("/withdraw 99999999")
	if !strings.Contains(reply, "❌") {
		t.Errorf("overdraft must be rejected: %s", reply)
	}
}

func TestHandleCommand_TradeLog(t *testing.T) {
	s := newTestScheduler(t)
	s.HandleCommand("/record 2026-08-10 1 Buy 10 60")
	reply := s.HandleCommand("/log")
	if !strings.Contains(reply, "Buy 10 @ $60.00") {
		t.Errorf("log reply: %s", reply)
	}
	s.HandleCommand("/undo")
	if reply = s.HandleCommand("/log"); !strings.Contains(reply, "empty") {
		t.Errorf("log after undo: %s", reply)
	}
}
