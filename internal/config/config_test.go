package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  bot_token: "tok"
  chat_id: "42"
market:
  start_date: "2012-01-01"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market.StartDate != "2012-01-01" {
		t.Errorf("start date from file: got %s", cfg.Market.StartDate)
	}
	if cfg.Market.DefaultUSDKRW != 1450 || cfg.Market.CacheTTLMin != 5 {
		t.Errorf("defaults not applied: %+v", cfg.Market)
	}
	if cfg.Database.SQLitePath == "" || cfg.Schedule.DailyCron == "" {
		t.Error("defaults for database/schedule missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}

	t.Setenv("SERIES_START", "2015-06-01")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.Market.StartDate != "2015-06-01" {
		t.Errorf("env override lost: %s", cfg.Market.StartDate)
	}
}

func TestValidate_Required(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Telegram.BotToken = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing bot token")
	}
	cfg.Telegram.BotToken = "tok"
	cfg.Telegram.ChatID = "42"
	cfg.Market.StartDate = "not-a-date"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad start date")
	}
}
