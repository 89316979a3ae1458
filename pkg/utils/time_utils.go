// utils/time_utils.go
package utils

import (
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DefaultTripYear is the year assumed for "M/D" dates.
const DefaultTripYear = 2026

// InvalidTimestamp is the sort key of an entry whose date or time could not be read.
// It orders before every real timestamp, the epoch included, and is never in the future.
const InvalidTimestamp int64 = math.MinInt64

// DatePoint is a normalized date. Valid is false when a numeric segment was unreadable.
type DatePoint struct {
	Time  time.Time
	Valid bool
}

// UnixMilli returns the sort key of the date point.
func (d DatePoint) UnixMilli() int64 {
	if !d.Valid {
		return InvalidTimestamp
	}
	return d.Time.UnixMilli()
}

// DateNormalizer reads the loose date and time strings used in the itinerary sheet.
// Everything is interpreted on the wall clock of Location; no zone conversion happens.
type DateNormalizer struct {
	Year     int
	Location *time.Location
}

func NewDateNormalizer(year int, loc *time.Location) *DateNormalizer {
	if year == 0 {
		year = DefaultTripYear
	}
	if loc == nil {
		loc = time.Local
	}
	return &DateNormalizer{Year: year, Location: loc}
}

var defaultNormalizer = NewDateNormalizer(DefaultTripYear, nil)

// NormalizeDate uses the default trip year and the process-local zone.
func NormalizeDate(dateStr string) DatePoint {
	return defaultNormalizer.NormalizeDate(dateStr)
}

// CalculateTimestamp uses the default trip year and the process-local zone.
func CalculateTimestamp(dateStr, timeStr string) int64 {
	return defaultNormalizer.CalculateTimestamp(dateStr, timeStr)
}

// NormalizeDate accepts "M/D" (trip year), "Y/M/D", or anything jinzhu/now can parse.
// Empty input is the epoch, the "unknown date" sentinel.
func (n *DateNormalizer) NormalizeDate(dateStr string) DatePoint {
	if dateStr == "" {
		return DatePoint{Time: time.UnixMilli(0).In(n.Location), Valid: true}
	}

	parts := strings.Split(dateStr, "/")
	switch len(parts) {
	case 2:
		m, okM := leadingInt(parts[0])
		d, okD := leadingInt(parts[1])
		if !okM || !okD {
			return DatePoint{}
		}
		return DatePoint{Time: time.Date(n.Year, time.Month(m), d, 0, 0, 0, 0, n.Location), Valid: true}
	case 3:
		y, okY := leadingInt(parts[0])
		m, okM := leadingInt(parts[1])
		d, okD := leadingInt(parts[2])
		if !okY || !okM || !okD {
			return DatePoint{}
		}
		return DatePoint{Time: time.Date(y, time.Month(m), d, 0, 0, 0, 0, n.Location), Valid: true}
	}

	t, err := now.ParseInLocation(n.Location, strings.TrimSpace(dateStr))
	if err != nil {
		return DatePoint{}
	}
	return DatePoint{Time: t, Valid: true}
}

// CalculateTimestamp returns epoch millis for date plus an optional "H:MM" time.
// A time without ':' leaves the timestamp at midnight of the date.
func (n *DateNormalizer) CalculateTimestamp(dateStr, timeStr string) int64 {
	d := n.NormalizeDate(dateStr)
	if !d.Valid {
		return InvalidTimestamp
	}
	if timeStr == "" || !strings.Contains(timeStr, ":") {
		return d.UnixMilli()
	}

	parts := strings.Split(timeStr, ":")
	h, okH := leadingInt(parts[0])
	m, okM := leadingInt(parts[1])
	if !okH || !okM {
		return InvalidTimestamp
	}
	t := d.Time
	return time.Date(t.Year(), t.Month(), t.Day(), h, m, t.Second(), t.Nanosecond(), t.Location()).UnixMilli()
}

// FromUnixMilli converts a sort key back to wall-clock time.
func (n *DateNormalizer) FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).In(n.Location)
}

// SameCalendarDay compares year, month and day in a's location.
func SameCalendarDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatClock renders a 24h "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// ParseLooseInt reads numbers the way the sheet data is written: "15", " 15", "15分".
func ParseLooseInt(s string) (int, bool) {
	return leadingInt(s)
}

// leadingInt reads an optional sign and the leading digits of s, ignoring surrounding space
// and any trailing text ("5日" is 5). ok is false when no digit leads.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	v, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if v < math.MaxInt32 {
			v = v*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
