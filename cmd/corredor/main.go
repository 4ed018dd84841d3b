package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mvaldelvira/corredor/internal/cli"
	"github.com/mvaldelvira/corredor/internal/config"
	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/service"
	"github.com/mvaldelvira/corredor/internal/session"
	"github.com/mvaldelvira/corredor/internal/tutorial"
	"github.com/mvaldelvira/corredor/internal/voice"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CORREDOR_CONFIG")
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	agentRepo := repository.NewSQLiteAgentRepo(database)
	contactRepo := repository.NewSQLiteContactRepo(database)
	kpiRepo := repository.NewSQLiteKpiRepo(database)
	objectiveRepo := repository.NewSQLiteObjectiveRepo(database)

	// Wire unit of work for transactional upserts
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Contacts:   service.NewContactService(contactRepo),
		Kpis:       service.NewKpiService(kpiRepo, uow),
		Pipeline:   service.NewPipelineService(contactRepo),
		Objectives: service.NewObjectiveService(objectiveRepo, uow),
		Agents:     service.NewAgentService(agentRepo),
		Config:     cfg,
	}

	// Detect interactive terminal for forms and the board.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Resolve the signed-in viewer. An empty database is still usable for
	// agent onboarding, so a missing agent only blocks scoped commands.
	store := session.NewStore()
	sess, err := session.Resolve(context.Background(), agentRepo, cfg.AgentEmail)
	if err != nil && !errors.Is(err, repository.ErrNotFound) && cfg.AgentEmail != "" {
		return err
	}
	if err == nil {
		store.Init(sess)
		defer store.Teardown()
		app.Session, _ = store.Current()
	}

	// Wire the narration pipeline only when voice synthesis is enabled.
	if cfg.Voice.Enabled {
		var observer voice.Observer = voice.NoopObserver{}
		if cfg.Voice.LogCalls {
			observer = voice.NewLogObserver(os.Stderr)
		}
		synth := voice.NewClient(cfg.Voice, observer)
		app.Narration = tutorial.NewPipeline(synth, cfg.Tutorial.OutputDir)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
