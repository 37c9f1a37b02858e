package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Strategy thresholds are fixed
// in code; only operational settings live here.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Market struct {
		StartDate     string  `yaml:"start_date"` // first day of history, YYYY-MM-DD
		DefaultUSDKRW float64 `yaml:"default_usd_krw"`
		CacheTTLMin   int     `yaml:"cache_ttl_minutes"`
	} `yaml:"market"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"` // post-close assessment
		WatchCron string `yaml:"watch_cron"` // intraday exit/tier watch
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then .env, then environment variable
// overrides, then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; real env vars still win below.
	_ = godotenv.Load()

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SERIES_START"); v != "" {
		cfg.Market.StartDate = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Market.CacheTTLMin = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}

	if cfg.Market.StartDate == "" {
		cfg.Market.StartDate = "2010-02-15"
	}
	if cfg.Market.DefaultUSDKRW == 0 {
		cfg.Market.DefaultUSDKRW = 1450.0
	}
	if cfg.Market.CacheTTLMin == 0 {
		cfg.Market.CacheTTLMin = 5
	}
	if cfg.Schedule.DailyCron == "" {
		// Shortly after the US close, expressed in the host timezone (KST).
		cfg.Schedule.DailyCron = "0 10 6 * * 2-6"
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 */30 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tqqq_bot.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if _, err := time.Parse("2006-01-02", c.Market.StartDate); err != nil {
		return fmt.Errorf("market.start_date: %w", err)
	}
	return nil
}

// Start returns the parsed series start date. Call Validate first.
func (c *Config) Start() time.Time {
	t, _ := time.Parse("2006-01-02", c.Market.StartDate)
	return t
}

// CacheTTL returns the snapshot cache duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Market.CacheTTLMin) * time.Minute
}
