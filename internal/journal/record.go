package journal

import (
	"errors"
	"fmt"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

var (
	// ErrNotOpen rejects a half exit on a record that is not fully open.
	// Applying it twice would double-halve the remaining shares.
	ErrNotOpen = errors.New("half exit requires an Open record")
	// ErrClosed rejects any exit on a record that holds no shares.
	ErrClosed = errors.New("record is already closed")
	// ErrNotFound is returned for an unknown record ID.
	ErrNotFound = errors.New("trade record not found")
)

// applyHalfExit sells half of an Open record at execPrice. The realized
// profit accumulates on the record and the remainder stays held as HalfOpen.
func applyHalfExit(r *model.TradeRecord, execPrice float64) (profit float64, err error) {
	if r.Status != model.StatusOpen {
		return 0, fmt.Errorf("record %d (%s): %w", r.ID, r.Status, ErrNotOpen)
	}
	sold := r.Shares / 2
	profit = (execPrice - r.Price) * sold
	r.Profit += profit
	r.Shares = sold
	r.Status = model.StatusHalfOpen
	return profit, nil
}

// applyFullExit liquidates everything a record still holds at execPrice and
// closes it. Valid from Open or HalfOpen.
func applyFullExit(r *model.TradeRecord, execPrice float64) (profit float64, err error) {
	if !r.IsOpen() {
		return 0, fmt.Errorf("record %d: %w", r.ID, ErrClosed)
	}
	profit = (execPrice - r.Price) * r.Shares
	r.Profit += profit
	r.Shares = 0
	r.Status = model.StatusClosed
	return profit, nil
}
