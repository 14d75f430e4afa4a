package dates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseCalendarDate parses a YYYY-MM-DD string into local midnight.
// The components are fed to time.Date directly instead of going through
// an ISO parser, so the result never shifts a day for zones behind UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)

	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])

	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), nil
}

func FormatCalendarDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()

	return wd != time.Saturday && wd != time.Sunday
}

// DaysBetween returns the whole-day difference |b-a|, rounding up so that
// a range crossing a DST shift still counts full calendar days.
func DaysBetween(a, b time.Time) int {
	d := Midnight(b).Sub(Midnight(a))

	if d < 0 {
		d = -d
	}

	return int(math.Ceil(d.Hours() / 24))
}

// CountWeekdays counts Monday-Friday days in [start, end], inclusive.
func CountWeekdays(start, end time.Time) int {
	n := 0

	for d := Midnight(start); !d.After(Midnight(end)); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			n++
		}
	}

	return n
}

// CountWeekendDays counts Saturday/Sunday days in [start, end], inclusive.
func CountWeekendDays(start, end time.Time) int {
	n := 0

	for d := Midnight(start); !d.After(Midnight(end)); d = d.AddDate(0, 0, 1) {
		if !IsBusinessDay(d) {
			n++
		}
	}

	return n
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekday returns the weekday of day 1 (Sunday = 0).
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
}

// FirstBusinessDay returns the day-of-month of the first weekday.
func FirstBusinessDay(year int, month time.Month) int {
	for day := 1; day <= 7; day++ {
		if IsBusinessDay(time.Date(year, month, day, 0, 0, 0, 0, time.Local)) {
			return day
		}
	}

	return 1
}
