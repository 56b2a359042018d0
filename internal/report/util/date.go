package util

import "time"

// All reporting dates are handled in UTC; day boundaries are inclusive.

func NormalizeDate(t time.Time) time.Time {
	return t.UTC()
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable millisecond of the day, which is
// what the document store keeps for bson dates.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
}

func IsSameOrAfter(from, to time.Time) bool {
	return from.Equal(to) || from.After(to)
}

func IsAfter(from, to time.Time) bool {
	return from.After(to)
}

// IsInRangeWithSame reports whether every date lies inside [from, to],
// boundaries included. An inverted range matches nothing.
func IsInRangeWithSame(from, to time.Time, dates ...time.Time) bool {
	if IsAfter(from, to) {
		return false
	}
	for _, date := range dates {
		if !IsSameOrAfter(date, from) || !IsSameOrAfter(to, date) {
			return false
		}
	}
	return true
}
