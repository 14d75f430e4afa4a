package model

import (
	"time"

	"github.com/kpereira/painel/pkg/util"
)

const (
	TaskPending   = "pendente"
	TaskStarted   = "iniciada"
	TaskConcluded = "concluida"
)

const (
	PeriodDaily    = "diaria"
	PeriodWeekly   = "semanal"
	PeriodMonthly  = "mensal"
	PeriodSeasonal = "temporada"
	PeriodPunctual = "pontual"
)

type TaskCategory struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null;uniqueIndex;size:255"`
	Color     string `gorm:"size:32"`
}

type Task struct {
	UID         string `gorm:"primaryKey;size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string `gorm:"not null;size:512"`
	Description string
	// Specialties is a ";"-joined list, e.g. "BCT;AIS".
	Specialties string `gorm:"size:64"`
	Periodicity string `gorm:"index;size:16"`
	// RecurrenceActive pauses or resumes a recurring task's schedule. A
	// paused task stays in the bank but stops generating occurrences.
	RecurrenceActive bool
	Status           string `gorm:"index;size:16;default:pendente"`
	Quantity         int    `gorm:"default:1"`
	Deadline         *time.Time
	StartDate        *time.Time
	CategoryID       *uint
	Category         *TaskCategory `gorm:"foreignKey:CategoryID"`
	AssigneeUID      *string       `gorm:"index;size:255"`
	Assignee         *Member       `gorm:"foreignKey:AssigneeUID"`
	StartedAt        *time.Time
	ConcludedAt      *time.Time
	CompletedQty     int
	// Preparatory tasks are auto-created for missions without a flight
	// authorization and removed when the mission gains one.
	MissionUID *string `gorm:"index;size:255"`
}

func (t *Task) SpecialtySet() util.StringSet {
	return util.StringToSet(t.Specialties)
}

func (t *Task) Assigned() bool {
	return t.AssigneeUID != nil && *t.AssigneeUID != ""
}

// Open means the task still needs work: not concluded and not already
// started by its assignee.
func (t *Task) Open() bool {
	if t.Status == TaskConcluded {
		return false
	}

	return !(t.Assigned() && t.Status == TaskStarted)
}

func (t *Task) Recurring() bool {
	switch t.Periodicity {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// DaysLeft counts whole days from today's midnight to the deadline,
// negative when overdue. The second result is false when the task has no
// deadline.
func (t *Task) DaysLeft(today time.Time) (int, bool) {
	if t.Deadline == nil {
		return 0, false
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	d := time.Date(t.Deadline.Year(), t.Deadline.Month(), t.Deadline.Day(), 0, 0, 0, 0, today.Location())

	return int(d.Sub(day).Hours() / 24), true
}
