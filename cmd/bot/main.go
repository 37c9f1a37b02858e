package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/collector"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/config"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/journal"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/notifier"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/portfolio"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/scheduler"
	"github.com/jyoon8505-jpg/tqqq-bot/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] tqqq-bot starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Market data: Yahoo fetcher behind a TTL snapshot cache.
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Start(), cfg.Market.DefaultUSDKRW)
	cache := collector.NewCache(col, cfg.CacheTTL())

	// Persistence: SQLite when configured, in-memory otherwise.
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		sq, err := store.NewSQLite(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			st = store.NewMemory()
		} else {
			st = sq
			defer sq.Close()
		}
	} else {
		st = store.NewMemory()
	}

	book, err := journal.NewBook(st)
	if err != nil {
		log.Fatalf("[FATAL] init trade journal: %v", err)
	}
	pf, err := portfolio.NewManager(st)
	if err != nil {
		log.Fatalf("[FATAL] init portfolio: %v", err)
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, cache, book, pf, tn, st)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WatchCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running daily assessment now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] tqqq-bot is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] tqqq-bot stopped")
}
