package soql

import (
	"strconv"
	"strings"
	"time"
)

// DateSpan is the resolution of a date literal: an inclusive [Start, End]
// range of days. Single-day literals have Start equal to End.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

// Single reports whether the span covers exactly one day.
func (s DateSpan) Single() bool {
	return s.Start.Equal(s.End)
}

var simpleDateLiterals = map[string]bool{
	"TODAY":      true,
	"YESTERDAY":  true,
	"TOMORROW":   true,
	"THIS_WEEK":  true,
	"LAST_WEEK":  true,
	"NEXT_WEEK":  true,
	"THIS_MONTH": true,
	"LAST_MONTH": true,
	"NEXT_MONTH": true,
}

var nDaysPrefixes = []string{"LAST_N_DAYS:", "NEXT_N_DAYS:", "N_DAYS_AGO:"}

// IsDateLiteral reports whether value names a relative date literal.
// Matching is case-insensitive. A literal with a malformed day count (for
// example LAST_N_DAYS:soon) is still reported as a literal; it fails later
// in ResolveDateLiteral, which sends evaluation down the plain comparison
// path.
func IsDateLiteral(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	if simpleDateLiterals[v] {
		return true
	}
	for _, prefix := range nDaysPrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

// ResolveDateLiteral resolves a date literal against now. Weeks are ISO
// weeks running Monday through Sunday; months are calendar months. ok is
// false when the literal is unknown or its day count does not parse.
func ResolveDateLiteral(value string, now time.Time) (DateSpan, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	today := truncateToDay(now)

	switch v {
	case "TODAY":
		return singleDay(today), true
	case "YESTERDAY":
		return singleDay(today.AddDate(0, 0, -1)), true
	case "TOMORROW":
		return singleDay(today.AddDate(0, 0, 1)), true
	case "THIS_WEEK":
		return weekOf(startOfWeek(today)), true
	case "LAST_WEEK":
		return weekOf(startOfWeek(today).AddDate(0, 0, -7)), true
	case "NEXT_WEEK":
		return weekOf(startOfWeek(today).AddDate(0, 0, 7)), true
	case "THIS_MONTH":
		return monthOf(startOfMonth(today)), true
	case "LAST_MONTH":
		return monthOf(startOfMonth(today).AddDate(0, -1, 0)), true
	case "NEXT_MONTH":
		return monthOf(startOfMonth(today).AddDate(0, 1, 0)), true
	}

	if n, ok := dayCount(v, "LAST_N_DAYS:"); ok {
		return DateSpan{Start: today.AddDate(0, 0, -n), End: today}, true
	}
	if n, ok := dayCount(v, "NEXT_N_DAYS:"); ok {
		return DateSpan{Start: today, End: today.AddDate(0, 0, n)}, true
	}
	if n, ok := dayCount(v, "N_DAYS_AGO:"); ok {
		return singleDay(today.AddDate(0, 0, -n)), true
	}

	return DateSpan{}, false
}

func dayCount(v, prefix string) (int, bool) {
	if !strings.HasPrefix(v, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(v[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func singleDay(day time.Time) DateSpan {
	return DateSpan{Start: day, End: day}
}

func weekOf(monday time.Time) DateSpan {
	return DateSpan{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// monthOf spans from the first day of the month to its last, handling the
// December to January rollover through AddDate.
func monthOf(first time.Time) DateSpan {
	return DateSpan{Start: first, End: first.AddDate(0, 1, 0).AddDate(0, 0, -1)}
}
