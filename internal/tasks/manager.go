package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
	"github.com/kpereira/painel/pkg/util"
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrIncomplete  = errors.New("task is missing required fields")
	ErrAssigned    = errors.New("task is already assigned")
	ErrNotAssignee = errors.New("task belongs to another member")
	ErrConcluded   = errors.New("task is already concluded")
	ErrBadState    = errors.New("invalid task state")
)

type Manager struct {
	logger *slog.Logger
	dbm    *database.DatabaseManager
}

func New(dbm *database.DatabaseManager) *Manager {
	return &Manager{
		logger: slog.With("logger", "tasks"),
		dbm:    dbm,
	}
}

func (m *Manager) Get(uid string) *model.Task {
	if m == nil || m.dbm == nil {
		return nil
	}

	return m.dbm.TaskQuery().UID(uid).Full().One()
}

func (m *Manager) All() []*model.Task {
	if m == nil || m.dbm == nil {
		return nil
	}

	return m.dbm.TaskQuery().Full().Get()
}

func (m *Manager) Create(t *model.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title", ErrIncomplete)
	}

	// A one-off task without an end date never expires and never leaves
	// the bank.
	if t.Periodicity == model.PeriodPunctual && t.Deadline == nil {
		return fmt.Errorf("%w: deadline", ErrIncomplete)
	}

	if t.UID == "" {
		t.UID = uuid.NewString()
	}

	if t.Status == "" {
		t.Status = model.TaskPending
	}

	if t.Quantity < 1 {
		t.Quantity = 1
	}

	if t.Recurring() {
		t.RecurrenceActive = true
	}

	return m.dbm.Create(t)
}

// Pull assigns an open task to a member. Pulling a task somebody else
// already holds is a conflict, never a silent takeover.
func (m *Manager) Pull(uid, memberUID string) error {
	t := m.Get(uid)

	if t == nil {
		return ErrNotFound
	}

	if t.Status == model.TaskConcluded {
		return ErrConcluded
	}

	if t.Assigned() && *t.AssigneeUID != memberUID {
		return ErrAssigned
	}

	return m.dbm.TaskQuery().UID(uid).Update(map[string]any{"assignee_uid": memberUID})
}

// Unassign puts the task back in the bank.
func (m *Manager) Unassign(uid, memberUID string) error {
	t := m.Get(uid)

	if t == nil {
		return ErrNotFound
	}

	if !t.Assigned() || *t.AssigneeUID != memberUID {
		return ErrNotAssignee
	}

	return m.dbm.TaskQuery().UID(uid).Update(map[string]any{
		"assignee_uid": nil,
		"status":       model.TaskPending,
		"started_at":   nil,
	})
}

func (m *Manager) Start(uid, memberUID string) error {
	t := m.Get(uid)

	if t == nil {
		return ErrNotFound
	}

	if !t.Assigned() || *t.AssigneeUID != memberUID {
		return ErrNotAssignee
	}

	if t.Status != model.TaskPending {
		return ErrBadState
	}

	return m.dbm.TaskQuery().UID(uid).Update(map[string]any{
		"status":     model.TaskStarted,
		"started_at": time.Now(),
	})
}

// Suspend drops a started task back to pending. The member keeps it.
func (m *Manager) Suspend(uid, memberUID string) error {
	t := m.Get(uid)

	if t == nil {
		return ErrNotFound
	}

	if !t.Assigned() || *t.AssigneeUID != memberUID {
		return ErrNotAssignee
	}

	if t.Status != model.TaskStarted {
		return ErrBadState
	}

	return m.dbm.TaskQuery().UID(uid).Update(map[string]any{
		"status":     model.TaskPending,
		"started_at": nil,
	})
}

// Complete concludes the task recording the final quantity. A nil qty
// keeps the stored one, which is what the dialog's cancel button means.
func (m *Manager) Complete(uid, memberUID string, qty *int) error {
	t := m.Get(uid)

	if t == nil {
		return ErrNotFound
	}

	if t.Status == model.TaskConcluded {
		return ErrConcluded
	}

	if t.Assigned() && *t.AssigneeUID != memberUID {
		return ErrNotAssignee
	}

	done := t.Quantity
	if qty != nil && *qty > 0 {
		done = *qty
	}

	return m.dbm.TaskQuery().UID(uid).Update(map[string]any{
		"status":        model.TaskConcluded,
		"completed_qty": done,
		"concluded_at":  time.Now(),
		"assignee_uid":  memberUID,
	})
}

// ToggleRecurrence pauses or resumes a recurring task's schedule. A
// paused task keeps its state but stops showing up in the planner.
func (m *Manager) ToggleRecurrence(uid string) (*model.Task, error) {
	t := m.Get(uid)

	if t == nil {
		return nil, ErrNotFound
	}

	if !t.Recurring() {
		return nil, ErrBadState
	}

	if err := m.dbm.TaskQuery().UID(uid).Update(map[string]any{
		"recurrence_active": !t.RecurrenceActive,
	}); err != nil {
		return nil, err
	}

	t.RecurrenceActive = !t.RecurrenceActive

	return t, nil
}

// Clone copies a task back into the bank as a fresh pending one.
func (m *Manager) Clone(uid string) (*model.Task, error) {
	t := m.Get(uid)

	if t == nil {
		return nil, ErrNotFound
	}

	c := &model.Task{
		UID:              uuid.NewString(),
		Title:            t.Title,
		Description:      t.Description,
		Specialties:      t.Specialties,
		Periodicity:      t.Periodicity,
		RecurrenceActive: t.RecurrenceActive,
		Status:           model.TaskPending,
		Quantity:         t.Quantity,
		Deadline:         t.Deadline,
		StartDate:        t.StartDate,
		CategoryID:       t.CategoryID,
	}

	if err := m.dbm.Create(c); err != nil {
		return nil, err
	}

	return c, nil
}

func (m *Manager) Delete(uid string) error {
	if m.Get(uid) == nil {
		return ErrNotFound
	}

	return m.dbm.TaskQuery().Delete(uid)
}

// Filter applies the dashboard chip conventions. An empty specialty
// selection hides everything, an empty periodicity selection shows
// everything.
func Filter(ts []*model.Task, specialties, periodicities util.StringSet) []*model.Task {
	if len(specialties) == 0 {
		return nil
	}

	res := make([]*model.Task, 0, len(ts))

	for _, t := range ts {
		if !t.SpecialtySet().Intersects(specialties) {
			continue
		}

		if len(periodicities) > 0 && !periodicities.Has(t.Periodicity) {
			continue
		}

		res = append(res, t)
	}

	return res
}

// OccursOn tells whether a task shows up on the given planner day. A
// paused recurring task keeps its start-date occurrence but generates
// no further ones.
func OccursOn(t *model.Task, day time.Time) bool {
	d := dates.Midnight(day)

	if t.StartDate != nil {
		start := dates.Midnight(*t.StartDate)

		if d.Equal(start) {
			return true
		}

		if d.Before(start) {
			return false
		}
	}

	if t.Recurring() && !t.RecurrenceActive {
		return false
	}

	switch t.Periodicity {
	case model.PeriodDaily:
		return dates.IsBusinessDay(d)
	case model.PeriodWeekly:
		return d.Weekday() == time.Monday
	case model.PeriodMonthly:
		return d.Day() == dates.FirstBusinessDay(d.Year(), d.Month())
	default:
		return false
	}
}

type Stats struct {
	Pending       int            `json:"pending"`
	Expiring      int            `json:"expiring"`
	CompletedLast int            `json:"completed_last_30"`
	CompletedPrev int            `json:"completed_prev_30"`
	Trend         int            `json:"trend"`
	ByMember      map[string]int `json:"by_member"`
}

// GetStats builds the dashboard counters as of the given day, over the
// tasks visible under the given chip selection.
func (m *Manager) GetStats(today time.Time, specialties, periodicities util.StringSet) *Stats {
	st := &Stats{ByMember: make(map[string]int)}

	day := dates.Midnight(today)
	last30 := day.AddDate(0, 0, -30)
	prev30 := day.AddDate(0, 0, -60)

	for _, t := range Filter(m.All(), specialties, periodicities) {
		if t.Open() {
			st.Pending++
		}

		if t.Periodicity == model.PeriodPunctual && t.Status != model.TaskConcluded {
			if left, ok := t.DaysLeft(day); ok && left >= 0 && left <= 3 {
				st.Expiring++
			}
		}

		if t.Status == model.TaskConcluded && t.ConcludedAt != nil {
			switch {
			case !t.ConcludedAt.Before(last30):
				st.CompletedLast++

				if t.AssigneeUID != nil {
					st.ByMember[*t.AssigneeUID]++
				}
			case !t.ConcludedAt.Before(prev30):
				st.CompletedPrev++
			}
		}
	}

	switch {
	case st.CompletedPrev > 0:
		st.Trend = int(math.Round(float64(st.CompletedLast-st.CompletedPrev) / float64(st.CompletedPrev) * 100))
	case st.CompletedLast > 0:
		st.Trend = 100
	}

	return st
}
