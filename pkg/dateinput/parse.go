// Package dateinput parses typed due-date entry into calendar dates.
package dateinput

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrParse = errors.New("unrecognised date")

// Parse turns human input into a due date relative to now, at day
// granularity in now's location. Empty input means no due date.
// Accepted forms: "today", "tomorrow", "yesterday", weekday names,
// relative offsets ("3", "in 3 days", "2 weeks", "3 days ago") and
// absolute dates ("21/04", "21/04/2026", "21 apr").
func Parse(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}
	day := startOfDay(now)
	switch s {
	case "today", "tod", "now":
		return &day, nil
	case "tomorrow", "tom":
		d := day.AddDate(0, 0, 1)
		return &d, nil
	case "yesterday", "yday":
		d := day.AddDate(0, 0, -1)
		return &d, nil
	}
	if d, err := parseWeekday(s, day); err == nil {
		return &d, nil
	}
	if d, err := parseOffset(s, day); err == nil {
		return &d, nil
	}
	if d, err := parseAbsolute(s, day); err == nil {
		return &d, nil
	}
	return nil, ErrParse
}

// parseWeekday resolves a weekday name to its next occurrence after today.
func parseWeekday(s string, day time.Time) (time.Time, error) {
	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if s == name || s == name[:3] {
			days := int(w - day.Weekday())
			if days <= 0 {
				days += 7
			}
			return day.AddDate(0, 0, days), nil
		}
	}
	return time.Time{}, ErrParse
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

func parseOffset(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "in"))
	var negative bool
	if len(s) > 0 {
		if s[0] == '-' {
			negative = true
			s = s[1:]
		} else if s[0] == '+' {
			s = s[1:]
		}
	}
	rest, n, err := parseInt(s)
	if err != nil {
		return time.Time{}, err
	}
	rest = strings.TrimSpace(rest)

	mult := 1
	if rest != "" {
		word := rest
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			word = rest[:i]
			rest = strings.TrimSpace(rest[i+1:])
		} else {
			rest = ""
		}
		mult = 0
		for _, m := range multipliers {
			end := min(len(m.key), len(word))
			if m.key[:end] == word {
				mult = m.value
				break
			}
		}
		if mult == 0 {
			return time.Time{}, errors.New("expected 'days', 'weeks', 'months', or 'years'")
		}
		switch rest {
		case "":
		case "ago":
			negative = true
		default:
			return time.Time{}, ErrParse
		}
	}

	if negative {
		n = -n
	}
	return day.AddDate(0, 0, n*mult), nil
}

var absoluteFormats = []string{
	"_2/01",
	"_2/01/06",
	"_2/01/2006",
	"_2-01",
	"_2-01-06",
	"_2-01-2006",
	"Jan _2",
	"Jan _2 2006",
	"January _2",
	"January _2 2006",
	"_2 Jan",
	"_2 Jan 2006",
	"_2 January",
	"_2 January 2006",
}

func parseAbsolute(s string, day time.Time) (time.Time, error) {
	for _, layout := range absoluteFormats {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		year := t.Year()
		if year == 0 {
			year = day.Year()
		}
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, day.Location()), nil
	}
	return time.Time{}, ErrParse
}

// parseInt consumes a leading integer and returns the rest of the string.
func parseInt(s string) (string, int, error) {
	n := 0
	i := 0
	for {
		if i >= len(s) {
			break
		}
		n1, err := strconv.Atoi(s[:i+1])
		// first one can not fail
		if err != nil {
			if i == 0 {
				return s, 0, errors.New("failed to parse")
			}
			break
		}
		n = n1
		i++
	}
	return s[i:], n, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
