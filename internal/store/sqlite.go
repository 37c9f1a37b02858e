package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

const dateLayout = "2006-01-02"

// SQLite persists all durable entities in a single SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the database and runs migrations.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps reads cheap while the bot rewrites entity tables.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id        INTEGER PRIMARY KEY,
			trade_date TEXT NOT NULL,
			side      TEXT NOT NULL,
			price     REAL NOT NULL,
			shares    REAL NOT NULL,
			tp_half   REAL,
			tp_full   REAL,
			stop_loss REAL,
			status    TEXT NOT NULL,
			profit    REAL NOT NULL DEFAULT 0,
			note      TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS positions (
			account   INTEGER PRIMARY KEY,
			ticker    TEXT NOT NULL,
			shares    REAL NOT NULL,
			avg_price REAL NOT NULL,
			level     INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS balance (
			id  INTEGER PRIMARY KEY CHECK (id = 1),
			krw REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS trade_log (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			log_date TEXT NOT NULL,
			account  INTEGER NOT NULL,
			action   TEXT NOT NULL,
			qty      REAL NOT NULL,
			price    REAL NOT NULL,
			amount   REAL NOT NULL,
			note     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			bar_date      TEXT NOT NULL,
			qqq_close     REAL,
			ma50          REAL,
			ma200         REAL,
			exit_line     REAL,
			rsi3          REAL,
			rsi_threshold REAL,
			accel         INTEGER,
			regime        TEXT,
			entry         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_ts ON assessments(timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLite) LoadTrades() ([]model.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, trade_date, side, price, shares,
		tp_half, tp_full, stop_loss, status, profit, note
		FROM trades ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []model.TradeRecord
	for rows.Next() {
		var r model.TradeRecord
		var date, side, status string
		if err := rows.Scan(&r.ID, &date, &side, &r.Price, &r.Shares,
			&r.TPHalf, &r.TPFull, &r.StopLoss, &status, &r.Profit, &r.Note); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		if r.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("trade %d: bad date %q: %w", r.ID, date, err)
		}
		r.Side = model.Side(side)
		r.Status = model.TradeStatus(status)
		trades = append(trades, r)
	}
	return trades, rows.Err()
}

func (s *SQLite) SaveTrades(trades []model.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rewrite("trades", func(tx *sql.Tx) error {
		for _, r := range trades {
			_, err := tx.Exec(`INSERT INTO trades
				(id, trade_date, side, price, shares, tp_half, tp_full, stop_loss, status, profit, note)
				VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
				r.ID, r.Date.Format(dateLayout), string(r.Side), r.Price, r.Shares,
				r.TPHalf, r.TPFull, r.StopLoss, string(r.Status), r.Profit, r.Note)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) LoadPositions() ([]model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT account, ticker, shares, avg_price, level FROM positions ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var positions []model.Position
	for rows.Next() {
		var p model.Position
		if err := rows.Scan(&p.Account, &p.Ticker, &p.Shares, &p.AvgPrice, &p.Level); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *SQLite) SavePositions(positions []model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rewrite("positions", func(tx *sql.Tx) error {
		for _, p := range positions {
			_, err := tx.Exec(`INSERT INTO positions (account, ticker, shares, avg_price, level)
				VALUES (?,?,?,?,?)`,
				p.Account, p.Ticker, p.Shares, p.AvgPrice, p.Level)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) LoadBalance() (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var krw float64
	err := s.db.QueryRow(`SELECT krw FROM balance WHERE id = 1`).Scan(&krw)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query balance: %w", err)
	}
	return krw, true, nil
}

func (s *SQLite) SaveBalance(amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO balance (id, krw) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET krw = excluded.krw`, amount)
	return err
}

func (s *SQLite) LoadLog() ([]model.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT log_date, account, action, qty, price, amount, note
		FROM trade_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query trade log: %w", err)
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var date string
		if err := rows.Scan(&date, &e.Account, &e.Action, &e.Qty, &e.Price, &e.Amount, &e.Note); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("bad log date %q: %w", date, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) AppendLog(entry model.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO trade_log (log_date, account, action, qty, price, amount, note)
		VALUES (?,?,?,?,?,?,?)`,
		entry.Date.Format(dateLayout), entry.Account, entry.Action,
		entry.Qty, entry.Price, entry.Amount, entry.Note)
	return err
}

func (s *SQLite) DropLastLog() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM trade_log WHERE id = (SELECT MAX(id) FROM trade_log)`)
	return err
}

func (s *SQLite) RecordAssessment(a *model.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO assessments
		(timestamp, bar_date, qqq_close, ma50, ma200, exit_line, rsi3, rsi_threshold, accel, regime, entry)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), a.Date.Format(dateLayout),
		a.QQQClose, a.MA50, a.MA200, a.ExitLine, a.RSI3, a.RSIThreshold,
		boolToInt(a.Accel), string(a.Regime), boolToInt(a.Enter))
	return err
}

// rewrite replaces a whole entity table inside one transaction.
func (s *SQLite) rewrite(table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin rewrite %s: %w", table, err)
	}
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
