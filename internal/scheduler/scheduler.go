package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/calculator"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/collector"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/journal"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/notifier"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/portfolio"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/strategy"
)

// Scheduler runs the cron tasks and serves Telegram commands. Each task is a
// full synchronous pass over one snapshot; nothing runs concurrently with a
// mutation.
type Scheduler struct {
	Cron      *cron.Cron
	Cache     *collector.Cache
	Book      *journal.Book
	Portfolio *portfolio.Manager
	Notifier  *notifier.TelegramNotifier
	Store     store.Store
	Ctx       context.Context

	mu      sync.Mutex
	alerted map[string]string // alert key -> day it was last sent
}

// NewScheduler wires the scheduler together.
func NewScheduler(ctx context.Context, cache *collector.Cache, book *journal.Book,
	pf *portfolio.Manager, tn *notifier.TelegramNotifier, st store.Store) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cache:     cache,
		Book:      book,
		Portfolio: pf,
		Notifier:  tn,
		Store:     st,
		Ctx:       ctx,
		alerted:   make(map[string]string),
	}
}

// RegisterAll registers the daily assessment and the intraday watch.
func (s *Scheduler) RegisterAll(dailyCron, watchCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// assess computes the latest assessment from a fresh snapshot.
func (s *Scheduler) assess() (*model.Snapshot, *model.Assessment, error) {
	snap, err := s.Cache.Get()
	if err != nil {
		return nil, nil, err
	}
	rows, err := calculator.Compute(&snap.Series)
	if err != nil {
		return nil, nil, err
	}
	return snap, strategy.Assess(rows[len(rows)-1]), nil
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily assessment")
	snap, a, err := s.assess()
	if err != nil {
		log.Printf("[ERROR] daily assessment: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily assessment failed: %v", err))
		return
	}

	report := notifier.FormatAssessment(a, snap.Live)
	trades := s.Book.Records()
	views := journal.OpenPositions(trades, snap.Live.TQQQ, time.Now())
	report += "\n" + notifier.FormatPositions(views)
	report += "\n" + notifier.FormatJournalSummary(journal.Summarize(trades, snap.Live.TQQQ))
	s.trySend(report)

	if err := s.Store.RecordAssessment(a); err != nil {
		log.Printf("[ERROR] record assessment: %v", err)
	}
}

// watchTask checks live prices against exit targets and portfolio tiers.
// Each alert fires at most once per calendar day.
func (s *Scheduler) watchTask() {
	snap, err := s.Cache.Get()
	if err != nil {
		log.Printf("[WARN] watch skipped, no snapshot: %v", err)
		return
	}
	live := snap.Live.TQQQ
	today := time.Now().Format("2006-01-02")

	for _, r := range s.Book.Records() {
		if !r.IsOpen() || r.Side != model.SideBuy {
			continue
		}
		switch {
		case live <= r.StopLoss:
			s.alertOnce(fmt.Sprintf("sl:%d", r.ID), today,
				fmt.Sprintf("🛑 #%d hit stop loss: $%.2f ≤ $%.2f — close with /close %d", r.ID, live, r.StopLoss, r.ID))
		case live >= r.TPFull:
			s.alertOnce(fmt.Sprintf("tpfull:%d", r.ID), today,
				fmt.Sprintf("🎯 #%d reached full TP: $%.2f ≥ $%.2f — close with /close %d", r.ID, live, r.TPFull, r.ID))
		case live >= r.TPHalf && r.Status == model.StatusOpen:
			s.alertOnce(fmt.Sprintf("tphalf:%d", r.ID), today,
				fmt.Sprintf("✂️ #%d reached half TP: $%.2f ≥ $%.2f — take half with /half %d", r.ID, live, r.TPHalf, r.ID))
		}
	}

	for _, a := range portfolio.EvaluateTiers(s.Portfolio.Positions(), snap.Quote) {
		key := fmt.Sprintf("tier:%d:%d", a.Account, a.TargetTier)
		s.alertOnce(key, today, notifier.FormatTierAlerts([]model.TierAlert{a}))
	}
}

func (s *Scheduler) alertOnce(key, day, msg string) {
	s.mu.Lock()
	if s.alerted[key] == day {
		s.mu.Unlock()
		return
	}
	s.alerted[key] = day
	s.mu.Unlock()
	s.trySend(msg)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
