package database

import (
	"gorm.io/gorm"

	"github.com/kpereira/painel/internal/model"
)

type TaskQuery struct {
	Query[model.Task]
	uid         string
	status      string
	periodicity string
	assignee    string
	mission     string
	full        bool
}

func NewTaskQuery(db *gorm.DB) *TaskQuery {
	return &TaskQuery{
		Query: Query[model.Task]{
			db:     db,
			limit:  500,
			offset: 0,
			order:  "deadline, created_at",
		},
	}
}

func (q *TaskQuery) Order(s string) *TaskQuery {
	q.order = s
	return q
}

func (q *TaskQuery) Limit(n int) *TaskQuery {
	q.limit = n
	return q
}

func (q *TaskQuery) UID(uid string) *TaskQuery {
	q.uid = uid
	return q
}

func (q *TaskQuery) Status(s string) *TaskQuery {
	q.status = s
	return q
}

func (q *TaskQuery) Periodicity(p string) *TaskQuery {
	q.periodicity = p
	return q
}

func (q *TaskQuery) Assignee(uid string) *TaskQuery {
	q.assignee = uid
	return q
}

func (q *TaskQuery) Mission(uid string) *TaskQuery {
	q.mission = uid
	return q
}

func (q *TaskQuery) Full() *TaskQuery {
	q.full = true
	return q
}

func (q *TaskQuery) where() *gorm.DB {
	tx := q.db

	if q.uid != "" {
		tx = tx.Where("uid = ?", q.uid)
	}

	if q.status != "" {
		tx = tx.Where("status = ?", q.status)
	}

	if q.periodicity != "" {
		tx = tx.Where("periodicity = ?", q.periodicity)
	}

	if q.assignee != "" {
		tx = tx.Where("assignee_uid = ?", q.assignee)
	}

	if q.mission != "" {
		tx = tx.Where("mission_uid = ?", q.mission)
	}

	if q.full {
		tx = tx.Preload("Category").Preload("Assignee")
	}

	return tx
}

func (q *TaskQuery) Get() []*model.Task {
	return q.get(q.where().Model(&model.Task{}))
}

func (q *TaskQuery) One() *model.Task {
	return q.one(q.where().Model(&model.Task{}))
}

func (q *TaskQuery) Count() int64 {
	return q.count(q.where().Model(&model.Task{}))
}

func (q *TaskQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Task{}), updates)
}

func (q *TaskQuery) Delete(uid string) error {
	return q.db.Where("uid = ?", uid).Delete(&model.Task{}).Error
}
