package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jabberjabberjabber/llm-jukebox/internal/catalog"
	"github.com/jabberjabberjabber/llm-jukebox/internal/jukebox"
	"github.com/jabberjabberjabber/llm-jukebox/internal/player"
	"github.com/jabberjabberjabber/llm-jukebox/internal/provider"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// The engine is wired only once setup has created the catalog database;
	// before that every command except setup reports service unavailable.
	var engine *jukebox.Engine
	if _, err := os.Stat(config.Database.Path); err == nil {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			logger.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		store := catalog.NewTrackRepository(db)
		reconciler := catalog.NewReconciler(store, logger)
		svc := provider.NewYTDLPService(config, logger)
		audio := player.NewPlayer(player.SpeakerDevice{}, config, logger)
		engine = jukebox.NewEngine(svc, store, reconciler, audio, logger)
		engine.SetSearchCache(catalog.NewSearchCache(db, 0))
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Engine: engine,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "jukebox",
		Usage:    "Fetch and play single songs from free-text queries",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
