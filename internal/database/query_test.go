package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kpereira/painel/internal/model"
)

func getTestDatabase() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&model.Member{}, &model.TaskCategory{}, &model.Task{}, &model.Mission{})

	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestMemberQuery(t *testing.T) {
	db := getTestDatabase()

	db.Save(&model.Member{UID: "m1", Name: "Ana Silva", WarName: "Silva", Rank: "3SGT", Specialty: model.SpecialtyBCT})
	db.Save(&model.Member{UID: "m2", Name: "Jose Costa", WarName: "Costa", Rank: "SO", Specialty: model.SpecialtyAIS})
	db.Save(&model.Member{UID: "m3", Name: "Rui Melo", WarName: "Melo", Rank: "CAP", Specialty: model.SpecialtyBCT, Unavailable: true})

	require.EqualValues(t, 3, NewMemberQuery(db).Count())
	require.Len(t, NewMemberQuery(db).Specialty(model.SpecialtyBCT).Get(), 2)
	require.Len(t, NewMemberQuery(db).Available().Get(), 2)

	m := NewMemberQuery(db).UID("m2").One()
	require.NotNil(t, m)
	require.Equal(t, "SO Costa", m.DisplayName())
}

func TestMemberQuery_Delete(t *testing.T) {
	db := getTestDatabase()

	uid := "m1"
	db.Save(&model.Member{UID: uid, Name: "Ana Silva", Rank: "3SGT"})
	db.Save(&model.Task{UID: "t1", Title: "Relatório", AssigneeUID: &uid, Status: model.TaskStarted})

	require.NoError(t, NewMemberQuery(db).Delete(uid))

	task := NewTaskQuery(db).UID("t1").One()
	require.NotNil(t, task)
	require.Nil(t, task.AssigneeUID)
	require.Equal(t, model.TaskPending, task.Status)
}

func TestTaskQuery(t *testing.T) {
	db := getTestDatabase()

	cat := &model.TaskCategory{Name: "Operacional", Color: "#123"}
	db.Save(cat)

	db.Save(&model.Task{UID: "t1", Title: "NOTAM diário", Periodicity: model.PeriodDaily, Status: model.TaskPending, CategoryID: &cat.ID})
	db.Save(&model.Task{UID: "t2", Title: "Escala mensal", Periodicity: model.PeriodMonthly, Status: model.TaskConcluded})

	require.EqualValues(t, 2, NewTaskQuery(db).Count())
	require.Len(t, NewTaskQuery(db).Status(model.TaskPending).Get(), 1)

	got := NewTaskQuery(db).UID("t1").Full().One()
	require.NotNil(t, got)
	require.NotNil(t, got.Category)
	require.Equal(t, "Operacional", got.Category.Name)
}

func TestMissionQuery_YearAndMember(t *testing.T) {
	db := getTestDatabase()

	m1 := &model.Member{UID: "m1", Name: "Ana Silva", Rank: "2SGT"}
	db.Save(m1)

	db.Save(&model.Mission{UID: "v1", Name: "SIRIUS", StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 15), Team: []*model.Member{m1}})
	db.Save(&model.Mission{UID: "v2", Name: "CARAJÁS", StartDate: day(2023, 12, 28), EndDate: day(2024, 1, 3)})
	db.Save(&model.Mission{UID: "v3", Name: "TAPURU", StartDate: day(2023, 5, 1), EndDate: day(2023, 5, 4)})

	// v2 spills into 2024 but its start date pins it to 2023.
	y2024 := NewMissionQuery(db).Year(2024).Get()
	require.Len(t, y2024, 1)
	require.Equal(t, "SIRIUS", y2024[0].Name)
	require.Len(t, NewMissionQuery(db).Year(2023).Get(), 2)

	byMember := NewMissionQuery(db).Member("m1").Get()
	require.Len(t, byMember, 1)
	require.Equal(t, "SIRIUS", byMember[0].Name)

	full := NewMissionQuery(db).UID("v1").Full().One()
	require.NotNil(t, full)
	require.Len(t, full.Team, 1)
}

func TestMissionQuery_Delete(t *testing.T) {
	db := getTestDatabase()

	m1 := &model.Member{UID: "m1", Name: "Ana Silva", Rank: "2SGT"}
	db.Save(m1)

	uid := "v1"
	db.Save(&model.Mission{UID: uid, Name: "SIRIUS", StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 15), Team: []*model.Member{m1}})
	db.Save(&model.Task{UID: "t1", Title: "Preparação SIRIUS", MissionUID: &uid})

	require.NoError(t, NewMissionQuery(db).Delete(uid))

	require.Nil(t, NewMissionQuery(db).UID(uid).One())
	require.Nil(t, NewTaskQuery(db).UID("t1").One())
	require.NotNil(t, NewMemberQuery(db).UID("m1").One())

	var links int64
	db.Table("mission_team").Count(&links)
	require.EqualValues(t, 0, links)
}

func TestCategoryQuery_Delete(t *testing.T) {
	db := getTestDatabase()

	cat := &model.TaskCategory{Name: "Operacional"}
	db.Save(cat)
	db.Save(&model.Task{UID: "t1", Title: "NOTAM diário", CategoryID: &cat.ID})

	require.NoError(t, NewCategoryQuery(db).Delete(cat.ID))

	task := NewTaskQuery(db).UID("t1").One()
	require.NotNil(t, task)
	require.Nil(t, task.CategoryID)
}
