package scheduler

import (
	"time"
)

// FX trades continuously from the Sydney open on Sunday 22:00 UTC to the
// New York close on Friday 22:00 UTC. Jobs that refresh estimates from
// daily bars have nothing to do while the market is closed.

// IsFXMarketOpen reports whether the FX market is trading at t.
func IsFXMarketOpen(t time.Time) bool {
	t = t.UTC()
	switch t.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return t.Hour() >= 22
	case time.Friday:
		return t.Hour() < 22
	default:
		return true
	}
}

// IsFXTradingDay reports whether t falls on a day that produces a daily
// bar (Monday through Friday).
func IsFXTradingDay(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
