package tasks

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/util"
)

func getTestManager(t *testing.T) *Manager {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	require.NoError(t, dbm.Save(&model.Member{UID: "m1", Name: "Ana Silva", Rank: "2SGT", Specialty: model.SpecialtyBCT}))
	require.NoError(t, dbm.Save(&model.Member{UID: "m2", Name: "Jose Costa", Rank: "SO", Specialty: model.SpecialtyAIS}))

	return New(dbm)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestLifecycle(t *testing.T) {
	m := getTestManager(t)

	task := &model.Task{Title: "Atualizar cartas", Specialties: "BCT"}
	require.NoError(t, m.Create(task))

	require.NoError(t, m.Pull(task.UID, "m1"))
	require.ErrorIs(t, m.Pull(task.UID, "m2"), ErrAssigned)

	require.NoError(t, m.Start(task.UID, "m1"))
	assert.Equal(t, model.TaskStarted, m.Get(task.UID).Status)
	assert.False(t, m.Get(task.UID).Open())

	require.NoError(t, m.Suspend(task.UID, "m1"))
	got := m.Get(task.UID)
	assert.Equal(t, model.TaskPending, got.Status)
	assert.Equal(t, "m1", *got.AssigneeUID)
	assert.True(t, got.Open())

	require.NoError(t, m.Unassign(task.UID, "m1"))
	assert.Nil(t, m.Get(task.UID).AssigneeUID)

	require.NoError(t, m.Pull(task.UID, "m2"))
	require.NoError(t, m.Start(task.UID, "m2"))
	require.NoError(t, m.Complete(task.UID, "m2", nil))

	got = m.Get(task.UID)
	assert.Equal(t, model.TaskConcluded, got.Status)
	require.ErrorIs(t, m.Pull(task.UID, "m1"), ErrConcluded)
}

func TestCompleteQuantity(t *testing.T) {
	m := getTestManager(t)

	task := &model.Task{Title: "Emitir NOTAM", Quantity: 5}
	require.NoError(t, m.Create(task))

	qty := 3
	require.NoError(t, m.Complete(task.UID, "m1", &qty))
	assert.Equal(t, 3, m.Get(task.UID).CompletedQty)

	// cancel in the quantity dialog still concludes, with the stored
	// quantity
	task2 := &model.Task{Title: "Emitir NOTAM 2", Quantity: 5}
	require.NoError(t, m.Create(task2))

	require.NoError(t, m.Complete(task2.UID, "m1", nil))
	got := m.Get(task2.UID)
	assert.Equal(t, model.TaskConcluded, got.Status)
	assert.Equal(t, 5, got.CompletedQty)
}

func TestCreateValidation(t *testing.T) {
	m := getTestManager(t)

	require.ErrorIs(t, m.Create(&model.Task{Periodicity: model.PeriodDaily}), ErrIncomplete)

	// one-off tasks need an end date
	require.ErrorIs(t, m.Create(&model.Task{Title: "Uma vez", Periodicity: model.PeriodPunctual}), ErrIncomplete)

	deadline := day(2024, 7, 1)
	require.NoError(t, m.Create(&model.Task{Title: "Uma vez", Periodicity: model.PeriodPunctual, Deadline: &deadline}))
}

func TestToggleRecurrence(t *testing.T) {
	m := getTestManager(t)

	task := &model.Task{Title: "NOTAM diário", Periodicity: model.PeriodDaily}
	require.NoError(t, m.Create(task))
	assert.True(t, m.Get(task.UID).RecurrenceActive)

	monday := day(2024, 6, 10)
	assert.True(t, OccursOn(m.Get(task.UID), monday))

	got, err := m.ToggleRecurrence(task.UID)
	require.NoError(t, err)
	assert.False(t, got.RecurrenceActive)

	// a paused schedule generates no occurrences
	assert.False(t, OccursOn(m.Get(task.UID), monday))

	got, err = m.ToggleRecurrence(task.UID)
	require.NoError(t, err)
	assert.True(t, got.RecurrenceActive)
	assert.True(t, OccursOn(m.Get(task.UID), monday))

	deadline := day(2024, 7, 1)
	punctual := &model.Task{Title: "Uma vez", Periodicity: model.PeriodPunctual, Deadline: &deadline}
	require.NoError(t, m.Create(punctual))
	_, err = m.ToggleRecurrence(punctual.UID)
	require.ErrorIs(t, err, ErrBadState)
}

func TestStartRequiresAssignment(t *testing.T) {
	m := getTestManager(t)

	task := &model.Task{Title: "Conferir escala"}
	require.NoError(t, m.Create(task))

	require.ErrorIs(t, m.Start(task.UID, "m1"), ErrNotAssignee)
	require.ErrorIs(t, m.Unassign(task.UID, "m1"), ErrNotAssignee)
}

func TestFilter(t *testing.T) {
	ts := []*model.Task{
		{UID: "t1", Title: "a", Specialties: "BCT", Periodicity: model.PeriodDaily},
		{UID: "t2", Title: "b", Specialties: "AIS", Periodicity: model.PeriodWeekly},
		{UID: "t3", Title: "c", Specialties: "BCT;AIS", Periodicity: model.PeriodPunctual},
		{UID: "t4", Title: "d", Periodicity: model.PeriodPunctual},
	}

	// no specialty selected means nothing is shown
	assert.Empty(t, Filter(ts, util.NewStringSet(), util.NewStringSet(model.PeriodDaily)))

	// no periodicity selected means no periodicity restriction
	got := Filter(ts, util.NewStringSet(model.SpecialtyBCT), util.NewStringSet())
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].UID)
	assert.Equal(t, "t3", got[1].UID)

	got = Filter(ts, util.NewStringSet(model.SpecialtyAIS), util.NewStringSet(model.PeriodPunctual))
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].UID)

	// a task carrying no specialty never intersects a selection
	got = Filter(ts, util.NewStringSet(model.SpecialtyBCT, model.SpecialtyAIS), util.NewStringSet())
	require.Len(t, got, 3)
	for _, x := range got {
		assert.NotEqual(t, "t4", x.UID)
	}
}

func TestOccursOn(t *testing.T) {
	start := day(2024, 6, 10) // Monday

	daily := &model.Task{Periodicity: model.PeriodDaily, RecurrenceActive: true, StartDate: &start}
	assert.True(t, OccursOn(daily, day(2024, 6, 11)))
	assert.False(t, OccursOn(daily, day(2024, 6, 15))) // Saturday
	assert.False(t, OccursOn(daily, day(2024, 6, 5)))  // before start

	weekly := &model.Task{Periodicity: model.PeriodWeekly, RecurrenceActive: true, StartDate: &start}
	assert.True(t, OccursOn(weekly, day(2024, 6, 17))) // next Monday
	assert.False(t, OccursOn(weekly, day(2024, 6, 18)))

	monthly := &model.Task{Periodicity: model.PeriodMonthly, RecurrenceActive: true, StartDate: &start}
	assert.True(t, OccursOn(monthly, day(2024, 7, 1))) // first business day
	assert.False(t, OccursOn(monthly, day(2024, 7, 2)))

	// paused recurrence keeps only the start-date occurrence
	paused := &model.Task{Periodicity: model.PeriodDaily, StartDate: &start}
	assert.True(t, OccursOn(paused, day(2024, 6, 10)))
	assert.False(t, OccursOn(paused, day(2024, 6, 11)))

	// start-date match wins even off-pattern
	sat := day(2024, 6, 15)
	punctual := &model.Task{Periodicity: model.PeriodPunctual, StartDate: &sat}
	assert.True(t, OccursOn(punctual, day(2024, 6, 15)))
	assert.False(t, OccursOn(punctual, day(2024, 6, 16)))
}

func TestUrgencyBuckets(t *testing.T) {
	assert.Equal(t, "overdue", model.Urgency(-1))
	assert.Equal(t, "due", model.Urgency(0))
	assert.Equal(t, "due", model.Urgency(1))
	assert.Equal(t, "upcoming", model.Urgency(2))
	assert.Equal(t, "upcoming", model.Urgency(3))
	assert.Equal(t, "", model.Urgency(4))
}

func TestGetStats(t *testing.T) {
	m := getTestManager(t)

	today := day(2024, 6, 10)
	soon := day(2024, 6, 12)
	far := day(2024, 6, 20)
	done10 := day(2024, 6, 1)
	done50 := day(2024, 4, 25)

	m1 := "m1"
	both := util.NewStringSet(model.SpecialtyBCT, model.SpecialtyAIS)

	require.NoError(t, m.Create(&model.Task{Title: "a", Specialties: "BCT", Periodicity: model.PeriodPunctual, Deadline: &soon}))
	require.NoError(t, m.Create(&model.Task{Title: "b", Specialties: "AIS", Periodicity: model.PeriodPunctual, Deadline: &far}))
	require.NoError(t, m.dbm.Save(&model.Task{UID: "t3", Title: "c", Specialties: "BCT", Status: model.TaskConcluded, ConcludedAt: &done10, AssigneeUID: &m1}))
	require.NoError(t, m.dbm.Save(&model.Task{UID: "t4", Title: "d", Specialties: "BCT", Status: model.TaskConcluded, ConcludedAt: &done50}))

	st := m.GetStats(today, both, util.NewStringSet())

	assert.Equal(t, 2, st.Pending)
	assert.Equal(t, 1, st.Expiring)
	assert.Equal(t, 1, st.CompletedLast)
	assert.Equal(t, 1, st.CompletedPrev)
	assert.Equal(t, 0, st.Trend)
	assert.Equal(t, 1, st.ByMember["m1"])

	// counters follow the chip selection
	st = m.GetStats(today, util.NewStringSet(model.SpecialtyAIS), util.NewStringSet())
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 0, st.Expiring)
	assert.Equal(t, 0, st.CompletedLast)
	assert.Equal(t, 0, st.CompletedPrev)
	assert.Equal(t, 0, st.Trend)
}

func TestStatsTrend(t *testing.T) {
	m := getTestManager(t)

	today := day(2024, 6, 10)
	done5 := day(2024, 6, 5)
	done40a := day(2024, 5, 5)
	done40b := day(2024, 5, 6)
	both := util.NewStringSet(model.SpecialtyBCT, model.SpecialtyAIS)

	// nothing concluded in the previous window floors the trend at 100%
	require.NoError(t, m.dbm.Save(&model.Task{UID: "t1", Title: "a", Specialties: "BCT", Status: model.TaskConcluded, ConcludedAt: &done5}))
	assert.Equal(t, 100, m.GetStats(today, both, util.NewStringSet()).Trend)

	require.NoError(t, m.dbm.Save(&model.Task{UID: "t2", Title: "b", Specialties: "BCT", Status: model.TaskConcluded, ConcludedAt: &done40a}))
	require.NoError(t, m.dbm.Save(&model.Task{UID: "t3", Title: "c", Specialties: "BCT", Status: model.TaskConcluded, ConcludedAt: &done40b}))

	// 1 completion now against 2 in the previous window
	assert.Equal(t, -50, m.GetStats(today, both, util.NewStringSet()).Trend)
}
