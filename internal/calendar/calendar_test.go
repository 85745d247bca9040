package calendar

import (
	"errors"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
)

func mustCalendar(t *testing.T) *Calendar {
	t.Helper()
	c, err := New("America/New_York", DefaultHolidays)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	return c
}

func nyTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestSessionWindows(t *testing.T) {
	c := mustCalendar(t)

	// Tuesday 2025-03-04 is a regular trading day.
	cases := []struct {
		at   string
		open bool
		pre  bool
		aft  bool
	}{
		{"2025-03-04 03:59:59", false, false, false},
		{"2025-03-04 04:00:00", false, true, false},
		{"2025-03-04 09:29:59", false, true, false},
		{"2025-03-04 09:30:00", true, false, false},
		{"2025-03-04 15:59:59", true, false, false},
		{"2025-03-04 16:00:00", false, false, true},
		{"2025-03-04 19:59:59", false, false, true},
		{"2025-03-04 20:00:00", false, false, false},
	}
	for _, tc := range cases {
		at := nyTime(t, tc.at)
		if got := c.IsOpen(at); got != tc.open {
			t.Errorf("IsOpen(%s) = %v, want %v", tc.at, got, tc.open)
		}
		if got := c.IsPreMarket(at); got != tc.pre {
			t.Errorf("IsPreMarket(%s) = %v, want %v", tc.at, got, tc.pre)
		}
		if got := c.IsAfterHours(at); got != tc.aft {
			t.Errorf("IsAfterHours(%s) = %v, want %v", tc.at, got, tc.aft)
		}
	}
}

func TestWeekendAndHolidayClosed(t *testing.T) {
	c := mustCalendar(t)

	// Saturday midday.
	sat := nyTime(t, "2025-03-08 12:00:00")
	if c.IsMarketDay(sat) {
		t.Error("expected Saturday to not be a market day")
	}
	if c.IsOpen(sat) || c.IsExtendedHours(sat) {
		t.Error("expected no session on Saturday")
	}

	// Independence Day 2025 falls on a Friday.
	holiday := nyTime(t, "2025-07-04 12:00:00")
	if c.IsMarketDay(holiday) {
		t.Error("expected holiday to not be a market day")
	}
	if c.IsOpen(holiday) {
		t.Error("expected market closed on holiday")
	}

	// New Year's Day 2025, midweek.
	newYear := nyTime(t, "2025-01-01 12:00:00")
	if c.IsMarketDay(newYear) {
		t.Error("expected New Year's Day to not be a market day")
	}
}

func TestTimezoneIndependence(t *testing.T) {
	c := mustCalendar(t)

	// 13:30 UTC == 09:30 New York in late March (EDT).
	utc := time.Date(2025, 3, 20, 13, 30, 0, 0, time.UTC)
	if !c.IsOpen(utc) {
		t.Error("expected 13:30 UTC (09:30 EDT) to be open")
	}
}

func TestNextOpenSkipsWeekend(t *testing.T) {
	c := mustCalendar(t)

	// Friday after close: next open is Monday 09:30.
	friday := nyTime(t, "2025-03-07 17:00:00")
	next, err := c.NextOpen(friday)
	if err != nil {
		t.Fatalf("NextOpen: %v", err)
	}
	want := nyTime(t, "2025-03-10 09:30:00")
	if !next.Equal(want) {
		t.Errorf("NextOpen = %s, want %s", next, want)
	}

	// Asking again from the returned instant must move strictly forward.
	after, err := c.NextOpen(next)
	if err != nil {
		t.Fatalf("NextOpen: %v", err)
	}
	if !after.After(next) {
		t.Errorf("second NextOpen %s not strictly after %s", after, next)
	}
}

func TestNextBoundaryAcrossDSTTransition(t *testing.T) {
	c := mustCalendar(t)

	// Clocks spring forward Sunday 2025-03-09. Boundaries resolved from that
	// day must still land on the fixed 09:30/16:00 wall clock, not drift by
	// the skipped hour.
	sunday := nyTime(t, "2025-03-09 12:00:00")

	open, err := c.NextOpen(sunday)
	if err != nil {
		t.Fatalf("NextOpen: %v", err)
	}
	if want := nyTime(t, "2025-03-10 09:30:00"); !open.Equal(want) {
		t.Errorf("NextOpen = %s, want %s", open, want)
	}

	closeAt, err := c.NextClose(sunday)
	if err != nil {
		t.Fatalf("NextClose: %v", err)
	}
	if want := nyTime(t, "2025-03-10 16:00:00"); !closeAt.Equal(want) {
		t.Errorf("NextClose = %s, want %s", closeAt, want)
	}

	// Fall back, Sunday 2025-11-02: the repeated hour must not drift either.
	fallBack := nyTime(t, "2025-11-02 12:00:00")
	open, err = c.NextOpen(fallBack)
	if err != nil {
		t.Fatalf("NextOpen: %v", err)
	}
	if want := nyTime(t, "2025-11-03 09:30:00"); !open.Equal(want) {
		t.Errorf("NextOpen = %s, want %s", open, want)
	}
}

func TestNextCloseDuringSession(t *testing.T) {
	c := mustCalendar(t)

	at := nyTime(t, "2025-03-04 10:00:00")
	next, err := c.NextClose(at)
	if err != nil {
		t.Fatalf("NextClose: %v", err)
	}
	want := nyTime(t, "2025-03-04 16:00:00")
	if !next.Equal(want) {
		t.Errorf("NextClose = %s, want %s", next, want)
	}
}

func TestNextOpenHolidayWall(t *testing.T) {
	// A calendar where every weekday is a holiday can never resolve a
	// boundary and must report the search failure.
	var holidays []string
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		holidays = append(holidays, day.AddDate(0, 0, i).Format("2006-01-02"))
	}
	c, err := New("America/New_York", holidays)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	_, err = c.NextOpen(nyTime(t, "2025-03-03 12:00:00"))
	var boundaryErr *ErrBoundarySearch
	if !errors.As(err, &boundaryErr) {
		t.Fatalf("expected ErrBoundarySearch, got %v", err)
	}
}

func TestCanTradeByOrderKind(t *testing.T) {
	c := mustCalendar(t)

	open := nyTime(t, "2025-03-04 10:00:00")
	pre := nyTime(t, "2025-03-04 08:00:00")
	closed := nyTime(t, "2025-03-04 22:00:00")

	cases := []struct {
		kind models.OrderKind
		at   time.Time
		want bool
	}{
		{models.OrderMarket, open, true},
		{models.OrderMarket, pre, false},
		{models.OrderLimit, open, true},
		{models.OrderLimit, pre, true},
		{models.OrderLimit, closed, false},
		{models.OrderStop, open, true},
		{models.OrderStop, pre, false},
	}
	for _, tc := range cases {
		if got := c.CanTrade(tc.kind, tc.at); got != tc.want {
			t.Errorf("CanTrade(%s, %s) = %v, want %v", tc.kind, tc.at, got, tc.want)
		}
	}
}

func TestSessionAtExclusiveFlags(t *testing.T) {
	c := mustCalendar(t)

	session, err := c.SessionAt(nyTime(t, "2025-03-04 10:00:00"))
	if err != nil {
		t.Fatalf("SessionAt: %v", err)
	}
	if !session.IsOpen || session.IsPreMarket || session.IsAfterHours {
		t.Errorf("unexpected flags: %+v", session)
	}
	if !session.NextClose.After(session.CurrentTime) {
		t.Error("NextClose must be strictly after current time")
	}
	if !session.NextOpen.After(session.CurrentTime) {
		t.Error("NextOpen must be strictly after current time")
	}
}

func TestInvalidTimezone(t *testing.T) {
	if _, err := New("Mars/Olympus", nil); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestTradingWindowLabels(t *testing.T) {
	c := mustCalendar(t)

	if w := c.TradingWindow(nyTime(t, "2025-03-04 10:00:00")); w.Window != "regular" || !w.CanTrade {
		t.Errorf("unexpected window %+v", w)
	}
	if w := c.TradingWindow(nyTime(t, "2025-03-04 05:00:00")); w.Window != "pre_market" || w.CanTrade {
		t.Errorf("unexpected window %+v", w)
	}
	if w := c.TradingWindow(nyTime(t, "2025-03-08 12:00:00")); w.Window != "closed" {
		t.Errorf("unexpected window %+v", w)
	}
}
