// Package diaria implements the per-diem ("diária") day accounting used by
// mission planning and yearly reports. The last calendar day of a mission
// counts as half a diária, so a same-day trip is worth 0.5.
package diaria

import (
	"math"
	"time"

	"github.com/kpereira/painel/pkg/dates"
)

// WorkdayHours is the hour value of one non-weekend day of presence per team
// member. The fractional last day contributes through Duration, so a half
// day yields WorkdayHours/2.
const WorkdayHours = 8.0

// Duration returns the billable diária count for [start, end].
func Duration(start, end time.Time) float64 {
	return float64(dates.DaysBetween(start, end)) + 0.5
}

// PerDiem is the mission total: duration times headcount.
func PerDiem(start, end time.Time, teamSize int) float64 {
	if teamSize < 1 {
		teamSize = 1
	}

	return Duration(start, end) * float64(teamSize)
}

// WorkHours converts a mission range into traveled work hours, crediting
// WorkdayHours per non-weekend day of presence per team member.
func WorkHours(start, end time.Time, teamSize int) float64 {
	if teamSize < 1 {
		teamSize = 1
	}

	days := Duration(start, end) - float64(dates.CountWeekendDays(start, end))

	if days < 0 {
		days = 0
	}

	return days * float64(teamSize) * WorkdayHours
}

// Round1 rounds to one decimal place, the precision diária totals are
// reported with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
