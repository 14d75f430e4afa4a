package main

import (
	"embed"
	"log/slog"
	"net/http"
	"runtime/pprof"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kpereira/painel/pkg/log"
)

//go:embed templates
var templates embed.FS

type HTTPServer struct {
	f    *fiber.App
	addr string
	app  *App
}

func NewHTTP(app *App) *HTTPServer {
	srv := &HTTPServer{addr: app.addr, app: app}

	engine := html.NewFileSystem(http.FS(templates), ".html")
	engine.Delims("[[", "]]")

	srv.f = fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true, Views: engine})

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", UserGetter: Username, DoMetrics: true}))

	srv.f.Get("/", getIndexHandler(app))
	srv.f.Get("/profiles", getProfilesHandler(app))
	srv.f.Post("/token", getLoginHandler(app))
	srv.f.Delete("/token", getLogoutHandler(app))

	api := srv.f.Group("/api", getTokenAuth(app))

	api.Get("/member", getMembersHandler(app))
	api.Post("/member", getMemberPostHandler(app))
	api.Get("/member/stats", getMemberStatsHandler(app))
	api.Get("/member/:uid", getMemberHandler(app))
	api.Put("/member/:uid", getMemberPutHandler(app))
	api.Delete("/member/:uid", getMemberDeleteHandler(app))

	api.Get("/task", getTasksHandler(app))
	api.Post("/task", getTaskPostHandler(app))
	api.Get("/task/stats", getTaskStatsHandler(app))
	api.Get("/task/:uid", getTaskHandler(app))
	api.Put("/task/:uid", getTaskPutHandler(app))
	api.Delete("/task/:uid", getTaskDeleteHandler(app))
	api.Post("/task/:uid/pull", getTaskPullHandler(app))
	api.Post("/task/:uid/unassign", getTaskUnassignHandler(app))
	api.Post("/task/:uid/start", getTaskStartHandler(app))
	api.Post("/task/:uid/suspend", getTaskSuspendHandler(app))
	api.Post("/task/:uid/complete", getTaskCompleteHandler(app))
	api.Post("/task/:uid/clone", getTaskCloneHandler(app))
	api.Post("/task/:uid/recurrence", getTaskRecurrenceHandler(app))

	api.Get("/category", getCategoriesHandler(app))
	api.Post("/category", getCategoryPostHandler(app))

	api.Get("/mission", getMissionsHandler(app))
	api.Post("/mission", getMissionPostHandler(app))
	api.Get("/mission/:uid", getMissionHandler(app))
	api.Put("/mission/:uid", getMissionPutHandler(app))
	api.Delete("/mission/:uid", getMissionDeleteHandler(app))

	api.Get("/report/:year", getReportHandler(app))
	api.Get("/calendar/:year/:month", getCalendarHandler(app))
	api.Get("/planner/:year/:month", getPlannerHandler(app))

	srv.f.Get("/stack", getStackHandler())
	srv.f.Get("/metrics", getMetricsHandler())

	return srv
}

func (srv *HTTPServer) Start() {
	go func() {
		srv.app.logger.Info("listening on " + srv.addr)

		if err := srv.f.Listen(srv.addr); err != nil {
			srv.app.logger.Error("http error", slog.Any("error", err))
		}
	}()
}

func getIndexHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := map[string]any{
			"version":  getVersion(),
			"members":  app.dbm.MemberQuery().Count(),
			"tasks":    app.dbm.TaskQuery().Count(),
			"missions": app.dbm.MissionQuery().Count(),
			"sessions": app.sessions.Count(),
		}

		return ctx.Render("templates/index", data)
	}
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}

func getVersion() string {
	return gitRevision + ":" + gitBranch
}
