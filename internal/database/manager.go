package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kpereira/painel/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

// AddDefaults seeds the category table on first run.
func (mm *DatabaseManager) AddDefaults() {
	if mm.CategoryQuery().Count() == 0 {
		defaults := []*model.TaskCategory{
			{Name: "Operacional", Color: "#1d4ed8"},
			{Name: "Administrativo", Color: "#b45309"},
			{Name: "Instrução", Color: "#15803d"},
			{Name: "Missão", Color: "#b91c1c"},
		}

		for _, c := range defaults {
			if err := mm.Create(c); err != nil {
				mm.logger.Error("error create category", slog.Any("error", err))
			}
		}
	}
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) ForceSave(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Clauses(clause.OnConflict{UpdateAll: true}).Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) MemberQuery() *MemberQuery {
	return NewMemberQuery(mm.db)
}

func (mm *DatabaseManager) TaskQuery() *TaskQuery {
	return NewTaskQuery(mm.db)
}

func (mm *DatabaseManager) MissionQuery() *MissionQuery {
	return NewMissionQuery(mm.db)
}

func (mm *DatabaseManager) CategoryQuery() *CategoryQuery {
	return NewCategoryQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.Member{},
		&model.TaskCategory{},
		&model.Task{},
		&model.Mission{},
	); err != nil {
		return err
	}

	return nil
}

// SetTeam replaces the whole mission team.
func (mm *DatabaseManager) SetTeam(mission *model.Mission, team []*model.Member) error {
	if mm == nil || mm.db == nil || mission == nil {
		return nil
	}

	if err := mm.db.Model(mission).Association("Team").Replace(team); err != nil {
		return err
	}

	mission.Team = team

	return mm.MissionQuery().UID(mission.UID).Update(map[string]any{"updated_at": time.Now()})
}
