package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
)

type memberRequest struct {
	Name              string `json:"name"`
	WarName           string `json:"war_name"`
	Email             string `json:"email"`
	Rank              string `json:"rank"`
	Specialty         string `json:"specialty"`
	EntryDate         string `json:"entry_date"`
	LastPromotionDate string `json:"last_promotion_date"`
	Phone             string `json:"phone"`
	Avatar            string `json:"avatar"`
	Unavailable       bool   `json:"unavailable"`
}

// apply copies the editable fields. Specialty is set once on creation
// and never changes afterwards.
func (r *memberRequest) apply(m *model.Member) error {
	if r.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	m.Name = r.Name
	m.WarName = r.WarName
	m.Email = r.Email
	m.Rank = r.Rank
	m.Phone = r.Phone
	m.Avatar = r.Avatar
	m.Unavailable = r.Unavailable

	if r.EntryDate != "" {
		d, err := dates.ParseCalendarDate(r.EntryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad entry_date")
		}

		m.EntryDate = d
	}

	if r.LastPromotionDate != "" {
		d, err := dates.ParseCalendarDate(r.LastPromotionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad last_promotion_date")
		}

		m.LastPromotionDate = &d
	}

	return nil
}

func getMembersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := app.dbm.MemberQuery()

		if s := ctx.Query("specialty"); s != "" {
			q = q.Specialty(s)
		}

		ms := q.Get()
		today := timeNow()

		res := make([]*model.MemberDTO, 0, len(ms))
		for _, m := range ms {
			res = append(res, m.DTO(app.missions.Traveling(m.UID, today)))
		}

		return ctx.JSON(res)
	}
}

func getMemberHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		m := app.dbm.MemberQuery().UID(ctx.Params("uid")).One()

		if m == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(m.DTO(app.missions.Traveling(m.UID, timeNow())))
	}
}

func getMemberPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(memberRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		m := &model.Member{UID: uuid.NewString(), Specialty: req.Specialty}

		if err := req.apply(m); err != nil {
			return err
		}

		if err := app.dbm.Create(m); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(m.DTO(false))
	}
}

func getMemberPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		m := app.dbm.MemberQuery().UID(ctx.Params("uid")).One()

		if m == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		req := new(memberRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if err := req.apply(m); err != nil {
			return err
		}

		if err := app.dbm.Save(m); err != nil {
			return err
		}

		return ctx.JSON(m.DTO(app.missions.Traveling(m.UID, timeNow())))
	}
}

func getMemberDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		uid := ctx.Params("uid")

		if app.dbm.MemberQuery().UID(uid).One() == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		if err := app.dbm.MemberQuery().Delete(uid); err != nil {
			return err
		}

		app.sessions.CloseAll(uid)

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getMemberStatsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		today := timeNow()

		stats := map[string]int{
			"total": 0, "ativo": 0, "em_viagem": 0, "indisponivel": 0,
		}

		bySpecialty := make(map[string]int)

		for _, m := range app.dbm.MemberQuery().Get() {
			stats["total"]++
			bySpecialty[m.Specialty]++

			switch m.Status(app.missions.Traveling(m.UID, today)) {
			case model.StatusTraveling:
				stats["em_viagem"]++
			case model.StatusUnavailable:
				stats["indisponivel"]++
			default:
				stats["ativo"]++
			}
		}

		return ctx.JSON(fiber.Map{"status": stats, "specialty": bySpecialty})
	}
}
