// Package biztime centralises the service clock.
// All storage and transport use UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	clockMu sync.RWMutex
	nowFunc = time.Now
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return nowFunc().UTC()
}

// SetClock replaces the clock and returns a function that restores the previous one.
// Intended for tests that need to move time past token or session expiry.
func SetClock(fn func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := nowFunc
	nowFunc = fn
	clockMu.Unlock()

	return func() {
		clockMu.Lock()
		nowFunc = prev
		clockMu.Unlock()
	}
}

// StartOfDayUTC truncates t to midnight UTC.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysFromNow returns the instant n whole days after NowUTC.
func DaysFromNow(n int) time.Time {
	return NowUTC().Add(time.Duration(n) * 24 * time.Hour)
}
