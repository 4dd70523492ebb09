package date

import "time"

// StartOfDay returns midnight of t's calendar day, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysFrom returns the signed number of calendar days from the day of
// `from` to the day of `to`. Each operand contributes only its own y/m/d;
// time of day and location never affect the result.
func DaysFrom(from, to time.Time) int {
	return int(dayOrdinal(to).Sub(dayOrdinal(from)) / (24 * time.Hour))
}

// dayOrdinal pins a calendar day to a fixed instant so day distances are
// exact whole multiples of 24h.
func dayOrdinal(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
