package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kpereira/painel/internal/missions"
	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/pkg/dates"
)

type missionRequest struct {
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	PerDiemType string   `json:"per_diem_type"`
	TravelMode  string   `json:"travel_mode"`
	TeamSize    int      `json:"team_size"`
	FlightAuth  bool     `json:"flight_auth"`
	Notes       string   `json:"notes"`
	Team        []string `json:"team"`
}

func (r *missionRequest) toMission() (*model.Mission, error) {
	start, err := dates.ParseCalendarDate(r.StartDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "bad start_date")
	}

	end, err := dates.ParseCalendarDate(r.EndDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "bad end_date")
	}

	return &model.Mission{
		Name:        r.Name,
		Destination: r.Destination,
		StartDate:   start,
		EndDate:     end,
		PerDiemType: r.PerDiemType,
		TravelMode:  r.TravelMode,
		TeamSize:    r.TeamSize,
		FlightAuth:  r.FlightAuth,
		Notes:       r.Notes,
	}, nil
}

// missionError maps manager errors onto HTTP statuses.
func missionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, missions.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, missions.ErrBadRange),
		errors.Is(err, missions.ErrBadMember),
		errors.Is(err, missions.ErrIncomplete):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func getMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		year := ctx.QueryInt("year", timeNow().Year())

		ms := app.missions.Year(year)

		res := make([]*model.MissionDTO, 0, len(ms))
		for _, m := range ms {
			res = append(res, m.DTO())
		}

		return ctx.JSON(res)
	}
}

func getMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		m := app.missions.Get(ctx.Params("uid"))

		if m == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(m.DTO())
	}
}

func getMissionPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(missionRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		m, err := req.toMission()
		if err != nil {
			return err
		}

		if err := missionError(app.missions.Create(m, req.Team)); err != nil {
			return err
		}

		missionsMetric.WithLabelValues("create").Inc()

		return ctx.Status(fiber.StatusCreated).JSON(app.missions.Get(m.UID).DTO())
	}
}

func getMissionPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(missionRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		m, err := req.toMission()
		if err != nil {
			return err
		}

		uid := ctx.Params("uid")

		if err := missionError(app.missions.Update(uid, m, req.Team)); err != nil {
			return err
		}

		missionsMetric.WithLabelValues("update").Inc()

		return ctx.JSON(app.missions.Get(uid).DTO())
	}
}

func getMissionDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := missionError(app.missions.Delete(ctx.Params("uid"))); err != nil {
			return err
		}

		missionsMetric.WithLabelValues("delete").Inc()

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getReportHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		year, err := strconv.Atoi(ctx.Params("year"))
		if err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		return ctx.JSON(fiber.Map{
			"summary": app.missions.Summary(year),
			"ranking": app.missions.Ranking(year),
		})
	}
}

func getCalendarHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		year, err := strconv.Atoi(ctx.Params("year"))
		if err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		month, err := strconv.Atoi(ctx.Params("month"))
		if err != nil || month < 1 || month > 12 {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		return ctx.JSON(app.missions.Calendar(year, time.Month(month)))
	}
}
