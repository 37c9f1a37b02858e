package collector

import (
	"errors"
	"testing"
	"time"
)

func closesFrom(base time.Time, prices ...float64) []DailyClose {
	out := make([]DailyClose, len(prices))
	for i, p := range prices {
		out[i] = DailyClose{Date: base.AddDate(0, 0, i), Close: p}
	}
	return out
}

func TestRefresh_AlignsAndForwardFillsFX(t *testing.T) {
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{
		Daily: map[string][]DailyClose{
			TickerTQQQ: closesFrom(base, 60, 61, 62, 63),
			// Day 3 missing on QQQ: that day must be dropped.
			TickerQQQ: {
				{Date: base, Close: 480},
				{Date: base.AddDate(0, 0, 1), Close: 482},
				{Date: base.AddDate(0, 0, 3), Close: 486},
			},
			TickerQLD: closesFrom(base, 80, 81, 82, 83),
			// FX known only on day 2.
			TickerFX: {{Date: base.AddDate(0, 0, 1), Close: 1391}},
		},
		Last: map[string]float64{TickerTQQQ: 64.5, TickerQQQ: 487, TickerQLD: 84},
	}

	snap, err := NewCollector(mock, base, 1450).Refresh()
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	rows := snap.Series.Rows
	if len(rows) != 3 {
		t.Fatalf("want 3 aligned rows, got %d", len(rows))
	}
	if rows[0].USDKRW != 1450 {
		t.Errorf("FX before first known rate must default, got %.0f", rows[0].USDKRW)
	}
	if rows[1].USDKRW != 1391 || rows[2].USDKRW != 1391 {
		t.Errorf("FX must forward-fill 1391, got %.0f then %.0f", rows[1].USDKRW, rows[2].USDKRW)
	}
	if rows[2].QQQ != 486 || rows[2].TQQQ != 63 {
		t.Errorf("alignment mismatch on last row: %+v", rows[2])
	}
	if !rows[2].HasQLD || rows[2].QLD != 83 {
		t.Errorf("QLD should be attached where available: %+v", rows[2])
	}
	if snap.Live.TQQQ != 64.5 {
		t.Errorf("live TQQQ: want 64.5, got %.2f", snap.Live.TQQQ)
	}
}

func TestRefresh_LiveOutageFallsBackToClose(t *testing.T) {
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{
		Daily: map[string][]DailyClose{
			TickerTQQQ: closesFrom(base, 60, 61),
			TickerQQQ:  closesFrom(base, 480, 482),
		},
		Last:    map[string]float64{TickerQQQ: 487},
		LastErr: map[string]error{TickerTQQQ: errors.New("quote feed down")},
	}

	snap, err := NewCollector(mock, base, 1450).Refresh()
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snap.Live.TQQQ != 61 {
		t.Errorf("live outage must fall back to last close 61, got %.2f", snap.Live.TQQQ)
	}
	if snap.Live.QQQ != 487 {
		t.Errorf("working live quote should win, got %.2f", snap.Live.QQQ)
	}
}

func TestRefresh_EmptyAlignmentIsHardError(t *testing.T) {
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{
		Daily: map[string][]DailyClose{
			TickerTQQQ: closesFrom(base, 60),
			TickerQQQ:  closesFrom(base.AddDate(0, 0, 10), 480), // disjoint dates
		},
	}
	if _, err := NewCollector(mock, base, 1450).Refresh(); !errors.Is(err, ErrNoUsableHistory) {
		t.Fatalf("want ErrNoUsableHistory, got %v", err)
	}
}

func TestCache_ServesWithinTTL(t *testing.T) {
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	mock := &MockFetcher{
		Daily: map[string][]DailyClose{
			TickerTQQQ: closesFrom(base, 60),
			TickerQQQ:  closesFrom(base, 480),
		},
	}
	cache := NewCache(NewCollector(mock, base, 1450), time.Hour)

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// Mutate the source: within the TTL the cached snapshot must still serve.
	mock.Daily[TickerTQQQ] = closesFrom(base, 99)
	second, err := cache.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first != second {
		t.Error("expected the identical snapshot within the TTL")
	}

	cache.Invalidate()
	third, err := cache.Get()
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if third == second {
		t.Error("invalidate must force a refresh")
	}
	if third.Series.Rows[0].TQQQ != 99 {
		t.Errorf("refreshed snapshot should see new data, got %.0f", third.Series.Rows[0].TQQQ)
	}
}
