package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/kpereira/painel/internal/model"
)

type MissionQuery struct {
	Query[model.Mission]
	uid    string
	year   int
	member string
	after  time.Time
	before time.Time
	full   bool
}

func NewMissionQuery(db *gorm.DB) *MissionQuery {
	return &MissionQuery{
		Query: Query[model.Mission]{
			db:     db,
			limit:  500,
			offset: 0,
			order:  "start_date",
		},
	}
}

func (q *MissionQuery) Order(s string) *MissionQuery {
	q.order = s
	return q
}

func (q *MissionQuery) Limit(n int) *MissionQuery {
	q.limit = n
	return q
}

func (q *MissionQuery) UID(uid string) *MissionQuery {
	q.uid = uid
	return q
}

// Year keeps missions starting in the given calendar year.
func (q *MissionQuery) Year(y int) *MissionQuery {
	q.year = y
	return q
}

// Member keeps missions whose team includes the given member.
func (q *MissionQuery) Member(uid string) *MissionQuery {
	q.member = uid
	return q
}

// After keeps missions ending on or after the given day.
func (q *MissionQuery) After(t time.Time) *MissionQuery {
	q.after = t
	return q
}

// Before keeps missions starting on or before the given day.
func (q *MissionQuery) Before(t time.Time) *MissionQuery {
	q.before = t
	return q
}

func (q *MissionQuery) Full() *MissionQuery {
	q.full = true
	return q
}

func (q *MissionQuery) where() *gorm.DB {
	tx := q.db

	if q.uid != "" {
		tx = tx.Where("missions.uid = ?", q.uid)
	}

	if q.year != 0 {
		from := time.Date(q.year, 1, 1, 0, 0, 0, 0, time.Local)
		to := time.Date(q.year+1, 1, 1, 0, 0, 0, 0, time.Local)
		tx = tx.Where("start_date >= ? AND start_date < ?", from, to)
	}

	if !q.after.IsZero() {
		tx = tx.Where("end_date >= ?", q.after)
	}

	if !q.before.IsZero() {
		tx = tx.Where("start_date <= ?", q.before)
	}

	if q.member != "" {
		tx = tx.Joins("JOIN mission_team mt ON mt.mission_uid = missions.uid").
			Where("mt.member_uid = ?", q.member)
	}

	if q.full {
		tx = tx.Preload("Team")
	}

	return tx
}

func (q *MissionQuery) Get() []*model.Mission {
	return q.get(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) One() *model.Mission {
	return q.one(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Count() int64 {
	return q.count(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Mission{}), updates)
}

// Delete removes a mission, its team links and any preparatory task tied
// to it in one transaction.
func (q *MissionQuery) Delete(uid string) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mission_team WHERE mission_uid = ?", uid).Error; err != nil {
			return err
		}

		if err := tx.Where("mission_uid = ?", uid).Delete(&model.Task{}).Error; err != nil {
			return err
		}

		return tx.Where("uid = ?", uid).Delete(&model.Mission{}).Error
	})
}
