package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/missions"
	"github.com/kpereira/painel/internal/roster"
	"github.com/kpereira/painel/internal/session"
	"github.com/kpereira/painel/internal/tasks"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	logger *slog.Logger

	addr string

	dbm      *database.DatabaseManager
	roster   *roster.FileRoster
	sessions *session.Manager
	tasks    *tasks.Manager
	missions *missions.Manager
}

func NewApp(dbm *database.DatabaseManager) *App {
	app := &App{
		logger:   slog.Default(),
		addr:     viper.GetString("http_addr"),
		dbm:      dbm,
		sessions: session.New(),
		tasks:    tasks.New(dbm),
		missions: missions.New(dbm),
	}

	app.roster = roster.New(dbm, viper.GetString("roster_file"))

	return app
}

func (app *App) Run() {
	if err := app.dbm.Migrate(); err != nil {
		app.logger.Error("migration error", slog.Any("error", err))
		os.Exit(1)
	}

	app.dbm.AddDefaults()

	if err := app.roster.Load(); err != nil {
		app.logger.Error("roster load error", slog.Any("error", err))
	}

	if err := app.roster.Start(); err != nil {
		app.logger.Warn("roster watch error", slog.Any("error", err))
	}

	NewHTTP(app).Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c
	app.logger.Info("exiting...")
	app.roster.Stop()
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	var debug = flag.Bool("debug", false, "debug mode")
	var conf = flag.String("config", "painel_server.yml", "name of config file")
	flag.Parse()

	viper.SetConfigFile(*conf)

	viper.SetDefault("http_addr", ":8088")
	viper.SetDefault("db", "painel.sqlite")
	viper.SetDefault("roster_file", "efetivo.yml")

	if err := viper.ReadInConfig(); err != nil {
		slog.Info("no config file, using defaults")
	}

	var h slog.Handler
	if *debug {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	db, err := database.GetDatabase(viper.GetString("db"), *debug)
	if err != nil {
		slog.Error("database error", slog.Any("error", err))
		os.Exit(1)
	}

	NewApp(database.New(db)).Run()
}
