package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2024-01-05")
	require.NoError(t, err)

	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.Local, d.Location())
}

func TestParseCalendarDateBad(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-13-01", "2024-01-40", "aaaa-bb-cc"} {
		_, err := ParseCalendarDate(s)
		assert.Error(t, err, s)
	}
}

func TestCountWeekdays(t *testing.T) {
	// 2024-01-01 is a Monday
	start, _ := ParseCalendarDate("2024-01-01")
	end, _ := ParseCalendarDate("2024-01-07")

	assert.Equal(t, 5, CountWeekdays(start, end))
	assert.Equal(t, 2, CountWeekendDays(start, end))
}

func TestCountWeekdaysSingle(t *testing.T) {
	mon, _ := ParseCalendarDate("2024-01-01")
	sat, _ := ParseCalendarDate("2024-01-06")

	assert.Equal(t, 1, CountWeekdays(mon, mon))
	assert.Equal(t, 0, CountWeekendDays(mon, mon))
	assert.Equal(t, 0, CountWeekdays(sat, sat))
	assert.Equal(t, 1, CountWeekendDays(sat, sat))
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseCalendarDate("2024-01-01")
	b, _ := ParseCalendarDate("2024-01-05")

	assert.Equal(t, 4, DaysBetween(a, b))
	assert.Equal(t, 4, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestFirstWeekday(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-02-01 a Thursday
	assert.Equal(t, 1, FirstWeekday(2024, time.January))
	assert.Equal(t, 4, FirstWeekday(2024, time.February))
}

func TestFirstBusinessDay(t *testing.T) {
	// June 2024 starts on a Saturday
	assert.Equal(t, 3, FirstBusinessDay(2024, time.June))
	assert.Equal(t, 1, FirstBusinessDay(2024, time.January))
}
