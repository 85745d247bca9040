package calendar

import (
	"fmt"
	"time"

	"MarketLens/internal/domain/models"
)

// Session clock boundaries in exchange-local seconds since midnight.
// Regular session is [09:30, 16:00); a timestamp exactly at 09:30:00 is open
// and one exactly at 16:00:00 is after-hours.
const (
	preMarketOpenSec   = 4 * 3600
	regularOpenSec     = 9*3600 + 30*60
	regularCloseSec    = 16 * 3600
	afterHoursCloseSec = 20 * 3600
)

// maxBoundarySearchDays caps the next-open/next-close scan. The weekday cycle
// guarantees termination within days for any sane holiday set; exceeding the
// cap means the calendar table itself is broken.
const maxBoundarySearchDays = 14

// ErrBoundarySearch reports a holiday/weekday configuration that prevents
// resolving the next session boundary. Unlike provider failures this is a
// configuration defect and must propagate.
type ErrBoundarySearch struct {
	From time.Time
	Days int
}

func (e *ErrBoundarySearch) Error() string {
	return fmt.Sprintf("calendar: no trading day within %d days of %s", e.Days, e.From.Format("2006-01-02"))
}

// Calendar is an immutable trading-hour table plus holiday set for one
// exchange. All methods are pure functions of their timestamp argument.
type Calendar struct {
	loc      *time.Location
	holidays map[string]struct{}
}

// New builds a Calendar for the given IANA timezone and holiday dates
// (date-only, "2006-01-02", exchange-local).
func New(timezone string, holidays []string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar: load timezone %q: %w", timezone, err)
	}
	hs := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		if _, err := time.ParseInLocation("2006-01-02", h, loc); err != nil {
			return nil, fmt.Errorf("calendar: bad holiday %q: %w", h, err)
		}
		hs[h] = struct{}{}
	}
	return &Calendar{loc: loc, holidays: hs}, nil
}

// NewDefault builds the NYSE/NASDAQ calendar with the bundled 2024-2025
// holiday set.
func NewDefault() *Calendar {
	c, err := New("America/New_York", DefaultHolidays)
	if err != nil {
		// bundled table is static; a failure here is a programming error
		panic(err)
	}
	return c
}

// DefaultHolidays is the NYSE/NASDAQ full-close list for 2024-2025.
var DefaultHolidays = []string{
	"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
	"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
	"2025-01-01", "2025-01-20", "2025-02-17", "2025-04-18", "2025-05-26",
	"2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27", "2025-12-25",
}

// Location returns the exchange timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

func (c *Calendar) isHoliday(t time.Time) bool {
	_, ok := c.holidays[t.In(c.loc).Format("2006-01-02")]
	return ok
}

// IsMarketDay reports whether t falls on a trading day (not a weekend, not a
// holiday) in the exchange timezone.
func (c *Calendar) IsMarketDay(t time.Time) bool {
	lt := t.In(c.loc)
	if wd := lt.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.isHoliday(lt)
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// IsOpen reports whether the regular session is active at t.
func (c *Calendar) IsOpen(t time.Time) bool {
	lt := t.In(c.loc)
	if !c.IsMarketDay(lt) {
		return false
	}
	s := secondOfDay(lt)
	return s >= regularOpenSec && s < regularCloseSec
}

// IsPreMarket reports whether t falls in the pre-market window.
func (c *Calendar) IsPreMarket(t time.Time) bool {
	lt := t.In(c.loc)
	if !c.IsMarketDay(lt) {
		return false
	}
	s := secondOfDay(lt)
	return s >= preMarketOpenSec && s < regularOpenSec
}

// IsAfterHours reports whether t falls in the after-hours window.
func (c *Calendar) IsAfterHours(t time.Time) bool {
	lt := t.In(c.loc)
	if !c.IsMarketDay(lt) {
		return false
	}
	s := secondOfDay(lt)
	return s >= regularCloseSec && s < afterHoursCloseSec
}

// IsExtendedHours reports whether t falls in pre-market or after-hours.
func (c *Calendar) IsExtendedHours(t time.Time) bool {
	return c.IsPreMarket(t) || c.IsAfterHours(t)
}

// nextBoundary resolves the next occurrence of the fixed clock time given in
// seconds-of-day, advancing one calendar day at a time until a trading day is
// found.
func (c *Calendar) nextBoundary(t time.Time, boundarySec int) (time.Time, error) {
	lt := t.In(c.loc)
	// Build from clock fields, not a duration offset from midnight: on a DST
	// transition day midnight+9h30m is not 09:30 wall clock. AddDate below
	// preserves the clock fields across transitions for the same reason.
	candidate := time.Date(lt.Year(), lt.Month(), lt.Day(),
		boundarySec/3600, boundarySec%3600/60, boundarySec%60, 0, c.loc)
	if !candidate.After(lt) || !c.IsMarketDay(candidate) {
		for i := 0; ; i++ {
			if i >= maxBoundarySearchDays {
				return time.Time{}, &ErrBoundarySearch{From: lt, Days: maxBoundarySearchDays}
			}
			candidate = candidate.AddDate(0, 0, 1)
			if c.IsMarketDay(candidate) && candidate.After(lt) {
				break
			}
		}
	}
	return candidate, nil
}

// NextOpen returns the next regular-session open strictly after t.
func (c *Calendar) NextOpen(t time.Time) (time.Time, error) {
	return c.nextBoundary(t, regularOpenSec)
}

// NextClose returns the next regular-session close strictly after t.
func (c *Calendar) NextClose(t time.Time) (time.Time, error) {
	return c.nextBoundary(t, regularCloseSec)
}

// SessionAt derives the full market session state for t.
func (c *Calendar) SessionAt(t time.Time) (models.MarketSession, error) {
	lt := t.In(c.loc)
	nextOpen, err := c.NextOpen(lt)
	if err != nil {
		return models.MarketSession{}, err
	}
	nextClose, err := c.NextClose(lt)
	if err != nil {
		return models.MarketSession{}, err
	}
	pre := c.IsPreMarket(lt)
	after := c.IsAfterHours(lt)
	return models.MarketSession{
		IsOpen:          c.IsOpen(lt),
		IsPreMarket:     pre,
		IsAfterHours:    after,
		IsExtendedHours: pre || after,
		IsMarketDay:     c.IsMarketDay(lt),
		CurrentTime:     lt,
		NextOpen:        nextOpen,
		NextClose:       nextClose,
	}, nil
}

// sessionMask selects which windows satisfy an order kind.
type sessionMask uint8

const (
	maskRegular sessionMask = 1 << iota
	maskPreMarket
	maskAfterHours
)

// orderSessions is the closed order-kind to allowed-window table. Market and
// stop orders need the regular session; limit orders accept any defined
// session.
var orderSessions = map[models.OrderKind]sessionMask{
	models.OrderMarket: maskRegular,
	models.OrderLimit:  maskRegular | maskPreMarket | maskAfterHours,
	models.OrderStop:   maskRegular,
}

// CanTrade reports whether an order of the given kind may trade at t.
func (c *Calendar) CanTrade(kind models.OrderKind, t time.Time) bool {
	mask, ok := orderSessions[kind]
	if !ok {
		return false
	}
	switch {
	case mask&maskRegular != 0 && c.IsOpen(t):
		return true
	case mask&maskPreMarket != 0 && c.IsPreMarket(t):
		return true
	case mask&maskAfterHours != 0 && c.IsAfterHours(t):
		return true
	}
	return false
}

// TradingWindow summarizes the current session for t.
func (c *Calendar) TradingWindow(t time.Time) models.TradingWindow {
	switch {
	case c.IsOpen(t):
		return models.TradingWindow{Window: "regular", Message: "Market open", CanTrade: true}
	case c.IsPreMarket(t):
		return models.TradingWindow{Window: "pre_market", Message: "Pre-market (limit orders only)", CanTrade: false}
	case c.IsAfterHours(t):
		return models.TradingWindow{Window: "after_hours", Message: "After-hours (limit orders only)", CanTrade: false}
	default:
		return models.TradingWindow{Window: "closed", Message: "Market closed", CanTrade: false}
	}
}
