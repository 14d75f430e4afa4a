package database

import (
	"gorm.io/gorm"

	"github.com/kpereira/painel/internal/model"
)

type MemberQuery struct {
	Query[model.Member]
	uid       string
	specialty string
	rank      string
	available bool
}

func NewMemberQuery(db *gorm.DB) *MemberQuery {
	return &MemberQuery{
		Query: Query[model.Member]{
			db:     db,
			limit:  200,
			offset: 0,
			order:  "rank, war_name",
		},
	}
}

func (q *MemberQuery) Order(s string) *MemberQuery {
	q.order = s
	return q
}

func (q *MemberQuery) Limit(n int) *MemberQuery {
	q.limit = n
	return q
}

func (q *MemberQuery) Offset(n int) *MemberQuery {
	q.offset = n
	return q
}

func (q *MemberQuery) UID(uid string) *MemberQuery {
	q.uid = uid
	return q
}

func (q *MemberQuery) Specialty(s string) *MemberQuery {
	q.specialty = s
	return q
}

func (q *MemberQuery) Rank(r string) *MemberQuery {
	q.rank = r
	return q
}

func (q *MemberQuery) Available() *MemberQuery {
	q.available = true
	return q
}

func (q *MemberQuery) where() *gorm.DB {
	tx := q.db

	if q.uid != "" {
		tx = tx.Where("uid = ?", q.uid)
	}

	if q.specialty != "" {
		tx = tx.Where("specialty = ?", q.specialty)
	}

	if q.rank != "" {
		tx = tx.Where("rank = ?", q.rank)
	}

	if q.available {
		tx = tx.Where("unavailable = ?", false)
	}

	return tx
}

func (q *MemberQuery) Get() []*model.Member {
	return q.get(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) One() *model.Member {
	return q.one(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) Count() int64 {
	return q.count(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Member{}), updates)
}

// Delete removes a member together with mission team links and releases
// any task they hold.
func (q *MemberQuery) Delete(uid string) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mission_team WHERE member_uid = ?", uid).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Task{}).
			Where("assignee_uid = ?", uid).
			Updates(map[string]any{"assignee_uid": nil, "status": model.TaskPending, "started_at": nil}).Error; err != nil {
			return err
		}

		return tx.Where("uid = ?", uid).Delete(&model.Member{}).Error
	})
}
