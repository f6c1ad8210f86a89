package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgreco/tempus/internal/cli"
	"github.com/mgreco/tempus/internal/config"
	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/repository"
	"github.com/mgreco/tempus/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	usageRepo := repository.NewSQLiteAppUsageRepo(database)
	pomodoroRepo := repository.NewSQLitePomodoroRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when debug logging is on.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogLevel == "debug" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Activities: service.NewActivityService(entryRepo, usageRepo, pomodoroRepo, tagRepo, uow,
			service.WithObserver(observer),
			service.WithSearchLookback(cfg.SearchLookbackDays, cfg.SearchQueryLookbackDays)),
		Categories:  categoryRepo,
		Tags:        tagRepo,
		Entries:     entryRepo,
		Usage:       usageRepo,
		Pomodoros:   pomodoroRepo,
		ConfirmBulk: cfg.ConfirmBulk,
	}

	// Detect interactive terminal so prompts are skipped in pipelines.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
