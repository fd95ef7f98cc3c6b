// Package timefmt renders a prayer's creation instant as a display string.
//
// The string is computed at read time, so the same record's display value
// changes across repeated listings. Recent instants get a relative phrase;
// anything a day or older is shown as an absolute date in a fixed
// reference timezone so every visitor sees the same wall clock.
package timefmt

import (
	"strconv"
	"time"
	_ "time/tzdata" // embed the zone database; hosts may not ship one
)

// DefaultTimezone is the reference zone for absolute dates.
const DefaultTimezone = "Africa/Cairo"

// Fallback returned when the stored instant is unusable. Formatting never
// fails with an error.
const unknown = "unknown"

const absoluteLayout = "Jan 2, 2006 at 3:04 PM"

// Formatter converts stored instants into display timestamps.
// The zero Formatter is not usable; construct with New.
type Formatter struct {
	loc *time.Location
	now func() time.Time // injectable clock for tests
}

// New builds a Formatter for the named timezone. An empty name selects
// DefaultTimezone; an unloadable zone degrades to UTC rather than
// failing, so a broken zone database cannot take the listing down.
func New(tzName string) *Formatter {
	if tzName == "" {
		tzName = DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc, now: time.Now}
}

// WithClock returns a copy of the Formatter that reads the current time
// from now instead of the wall clock.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	return &Formatter{loc: f.loc, now: now}
}

// Format renders the instant for display.
//
//	< 60s   "Just now"
//	< 1h    "N minute(s) ago"
//	< 24h   "N hour(s) ago"
//	>= 24h  absolute date/time in the reference zone
func (f *Formatter) Format(t time.Time) string {
	if t.IsZero() {
		return unknown
	}

	// Project both instants into the reference zone before comparing.
	now := f.now().In(f.loc)
	t = t.In(f.loc)

	elapsed := now.Sub(t)
	if elapsed < 0 {
		elapsed = 0
	}

	seconds := int64(elapsed / time.Second)
	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return t.Format(absoluteLayout)
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s ago"
}
