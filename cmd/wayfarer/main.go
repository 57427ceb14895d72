package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/wayfarer/internal/cli"
	"github.com/alexanderramin/wayfarer/internal/config"
	"github.com/alexanderramin/wayfarer/internal/db"
	"github.com/alexanderramin/wayfarer/internal/llm"
	"github.com/alexanderramin/wayfarer/internal/narration"
	"github.com/alexanderramin/wayfarer/internal/repository"
	"github.com/alexanderramin/wayfarer/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cli.NewLogger(os.Stderr, cfg.Log)

	database, err := db.OpenDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	itineraryRepo := repository.NewSQLiteItineraryRepo(database)
	profileRepo := repository.NewSQLitePlannerProfileRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(logger)
	profiles := service.NewProfileService(profileRepo, observer)

	// A saved profile wins over file and environment settings.
	var defaultInterests []string
	profile, err := profiles.Get(ctx)
	switch {
	case err == nil:
		cfg.ApplyProfile(profile)
		defaultInterests = profile.Interests
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("loading planner profile: %w", err)
	}
	dayCfg, err := cfg.DayConfig()
	if err != nil {
		return fmt.Errorf("planner settings: %w", err)
	}

	app := &cli.App{
		Planner:          service.NewPlannerService(dayCfg, observer),
		History:          service.NewHistoryService(uow, itineraryRepo, observer),
		Profiles:         profiles,
		Narrator:         narration.New(nil, logger),
		Config:           cfg,
		Logger:           logger,
		DefaultInterests: defaultInterests,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Narration goes through the LLM only when it is enabled.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewSlogObserver(logger)
		}
		app.Narrator = narration.New(llm.NewOllamaClient(llmCfg, llmObserver), logger)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
