package database

import (
	"gorm.io/gorm"

	"github.com/kpereira/painel/internal/model"
)

type CategoryQuery struct {
	Query[model.TaskCategory]
	id   uint
	name string
}

func NewCategoryQuery(db *gorm.DB) *CategoryQuery {
	return &CategoryQuery{
		Query: Query[model.TaskCategory]{
			db:    db,
			limit: 100,
			order: "name",
		},
	}
}

func (q *CategoryQuery) Id(id uint) *CategoryQuery {
	q.id = id
	return q
}

func (q *CategoryQuery) Name(name string) *CategoryQuery {
	q.name = name
	return q
}

func (q *CategoryQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.name != "" {
		tx = tx.Where("name = ?", q.name)
	}

	return tx
}

func (q *CategoryQuery) Get() []*model.TaskCategory {
	return q.get(q.where().Model(&model.TaskCategory{}))
}

func (q *CategoryQuery) One() *model.TaskCategory {
	return q.one(q.where().Model(&model.TaskCategory{}))
}

func (q *CategoryQuery) Count() int64 {
	return q.count(q.where().Model(&model.TaskCategory{}))
}

func (q *CategoryQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.TaskCategory{}), updates)
}

// Delete detaches the category from its tasks before removing it.
func (q *CategoryQuery) Delete(id uint) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.TaskCategory{}).Error
	})
}
