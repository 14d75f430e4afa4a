package main

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kpereira/painel/internal/model"
	"github.com/kpereira/painel/internal/tasks"
	"github.com/kpereira/painel/pkg/dates"
	"github.com/kpereira/painel/pkg/util"
)

type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	Periodicity string   `json:"periodicity"`
	Quantity    int      `json:"quantity"`
	Deadline    string   `json:"deadline"`
	StartDate   string   `json:"start_date"`
	CategoryID  *uint    `json:"category_id"`
}

func (r *taskRequest) apply(t *model.Task) error {
	if r.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}

	t.Title = r.Title
	t.Description = r.Description
	t.Specialties = strings.Join(r.Specialties, ";")
	t.Periodicity = r.Periodicity
	t.CategoryID = r.CategoryID

	if r.Quantity > 0 {
		t.Quantity = r.Quantity
	}

	if r.Deadline != "" {
		d, err := dates.ParseCalendarDate(r.Deadline)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad deadline")
		}

		t.Deadline = &d
	}

	if r.StartDate != "" {
		d, err := dates.ParseCalendarDate(r.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bad start_date")
		}

		t.StartDate = &d
	}

	return nil
}

// taskError maps manager errors onto HTTP statuses.
func taskError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tasks.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, tasks.ErrIncomplete):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tasks.ErrAssigned), errors.Is(err, tasks.ErrConcluded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, tasks.ErrNotAssignee), errors.Is(err, tasks.ErrBadState):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

func querySet(ctx *fiber.Ctx, name string) util.StringSet {
	set := util.NewStringSet()
	for _, s := range strings.Split(ctx.Query(name), ",") {
		set.Add(strings.TrimSpace(s))
	}

	return set
}

// getTasksHandler serves the dashboard list. Filters come as comma lists;
// no specialty filter means the viewer's own chips are off and nothing is
// shown, no periodicity filter means all periodicities.
func getTasksHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ts := tasks.Filter(app.tasks.All(), querySet(ctx, "specialties"), querySet(ctx, "periodicities"))
		today := timeNow()

		res := make([]*model.TaskDTO, 0, len(ts))
		for _, t := range ts {
			res = append(res, t.DTO(today))
		}

		return ctx.JSON(res)
	}
}

func getTaskHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		t := app.tasks.Get(ctx.Params("uid"))

		if t == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.JSON(t.DTO(timeNow()))
	}
}

func getTaskPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(taskRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		t := new(model.Task)

		if err := req.apply(t); err != nil {
			return err
		}

		if err := taskError(app.tasks.Create(t)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("create").Inc()

		return ctx.Status(fiber.StatusCreated).JSON(t.DTO(timeNow()))
	}
}

func getTaskPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		t := app.tasks.Get(ctx.Params("uid"))

		if t == nil {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		req := new(taskRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		if err := req.apply(t); err != nil {
			return err
		}

		if err := app.dbm.Save(t); err != nil {
			return err
		}

		return ctx.JSON(t.DTO(timeNow()))
	}
}

func getTaskDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !Member(ctx).CanDeleteTasks() {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		if err := taskError(app.tasks.Delete(ctx.Params("uid"))); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("delete").Inc()

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getTaskPullHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := taskError(app.tasks.Pull(ctx.Params("uid"), Member(ctx).UID)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("pull").Inc()

		return ctx.JSON(app.tasks.Get(ctx.Params("uid")).DTO(timeNow()))
	}
}

func getTaskUnassignHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := taskError(app.tasks.Unassign(ctx.Params("uid"), Member(ctx).UID)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("unassign").Inc()

		return ctx.JSON(app.tasks.Get(ctx.Params("uid")).DTO(timeNow()))
	}
}

func getTaskStartHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := taskError(app.tasks.Start(ctx.Params("uid"), Member(ctx).UID)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("start").Inc()

		return ctx.JSON(app.tasks.Get(ctx.Params("uid")).DTO(timeNow()))
	}
}

func getTaskSuspendHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := taskError(app.tasks.Suspend(ctx.Params("uid"), Member(ctx).UID)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("suspend").Inc()

		return ctx.JSON(app.tasks.Get(ctx.Params("uid")).DTO(timeNow()))
	}
}

type completeRequest struct {
	// nil quantity means the dialog was dismissed, the stored quantity
	// stands
	Quantity *int `json:"quantity"`
}

func getTaskCompleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(completeRequest)

		if len(ctx.Body()) > 0 {
			if err := ctx.BodyParser(req); err != nil {
				return ctx.SendStatus(fiber.StatusBadRequest)
			}
		}

		if err := taskError(app.tasks.Complete(ctx.Params("uid"), Member(ctx).UID, req.Quantity)); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("complete").Inc()

		return ctx.JSON(app.tasks.Get(ctx.Params("uid")).DTO(timeNow()))
	}
}

// getTaskRecurrenceHandler flips the schedule of a recurring task on or
// off.
func getTaskRecurrenceHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		t, err := app.tasks.ToggleRecurrence(ctx.Params("uid"))

		if err := taskError(err); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("recurrence").Inc()

		return ctx.JSON(t.DTO(timeNow()))
	}
}

func getTaskCloneHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := app.tasks.Clone(ctx.Params("uid"))

		if err := taskError(err); err != nil {
			return err
		}

		taskOpsMetric.WithLabelValues("clone").Inc()

		return ctx.Status(fiber.StatusCreated).JSON(c.DTO(timeNow()))
	}
}

// getTaskStatsHandler serves the dashboard counters scoped to the same
// chip selection as the task list.
func getTaskStatsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(app.tasks.GetStats(timeNow(), querySet(ctx, "specialties"), querySet(ctx, "periodicities")))
	}
}

func getPlannerHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		year, err := strconv.Atoi(ctx.Params("year"))
		if err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		month, err := strconv.Atoi(ctx.Params("month"))
		if err != nil || month < 1 || month > 12 {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		return ctx.JSON(app.tasks.Planner(year, time.Month(month)))
	}
}

func getCategoriesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cs := app.dbm.CategoryQuery().Get()

		res := make([]*model.CategoryDTO, 0, len(cs))
		for _, c := range cs {
			res = append(res, c.DTO())
		}

		return ctx.JSON(res)
	}
}

func getCategoryPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c := new(model.TaskCategory)

		if err := ctx.BodyParser(c); err != nil || c.Name == "" {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		c.ID = 0

		if err := app.dbm.Create(c); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(c.DTO())
	}
}
