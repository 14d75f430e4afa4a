package missions

import (
	"time"

	"github.com/kpereira/painel/pkg/dates"
)

const (
	SeverityNone   = "none"
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type CalendarDay struct {
	Day       int      `json:"day"`
	Occupancy int      `json:"occupancy"`
	Severity  string   `json:"severity"`
	Missions  []string `json:"missions,omitempty"`
}

type CalendarMonth struct {
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Leading int            `json:"leading"`
	Days    []*CalendarDay `json:"days"`
}

// Severity maps how many people are away on a day to a heatmap bucket.
func Severity(occupancy int) string {
	switch {
	case occupancy >= 7:
		return SeverityHigh
	case occupancy >= 4:
		return SeverityMedium
	case occupancy >= 1:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// Calendar builds the month grid: leading blank cells to align day 1 with
// its weekday (Sunday-first), then one cell per day with the summed team
// size of every mission covering it.
func (m *Manager) Calendar(year int, month time.Month) *CalendarMonth {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)

	ms := m.dbm.MissionQuery().After(from).Before(to).Full().Get()

	cm := &CalendarMonth{
		Year:    year,
		Month:   int(month),
		Leading: dates.FirstWeekday(year, month),
		Days:    make([]*CalendarDay, 0, dates.DaysInMonth(year, month)),
	}

	for d := 1; d <= dates.DaysInMonth(year, month); d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cell := &CalendarDay{Day: d}

		for _, mi := range ms {
			if mi.Includes(day) {
				cell.Occupancy += mi.Headcount()
				cell.Missions = append(cell.Missions, mi.Name)
			}
		}

		cell.Severity = Severity(cell.Occupancy)
		cm.Days = append(cm.Days, cell)
	}

	return cm
}
