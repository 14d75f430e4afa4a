package tasks

import (
	"time"

	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
)

type PlannerDay struct {
	Day   int              `json:"day"`
	Tasks []*model.TaskDTO `json:"tasks"`
}

type PlannerMonth struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Leading int           `json:"leading"`
	Days    []*PlannerDay `json:"days"`
}

// Planner spreads recurring and dated tasks over the month grid.
func (m *Manager) Planner(year int, month time.Month) *PlannerMonth {
	ts := m.All()

	pm := &PlannerMonth{
		Year:    year,
		Month:   int(month),
		Leading: dates.FirstWeekday(year, month),
		Days:    make([]*PlannerDay, 0, dates.DaysInMonth(year, month)),
	}

	for d := 1; d <= dates.DaysInMonth(year, month); d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cell := &PlannerDay{Day: d, Tasks: make([]*model.TaskDTO, 0)}

		for _, t := range ts {
			if OccursOn(t, day) {
				cell.Tasks = append(cell.Tasks, t.DTO(day))
			}
		}

		pm.Days = append(pm.Days, cell)
	}

	return pm
}
