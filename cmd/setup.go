package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/jabberjabberjabber/llm-jukebox/internal/provider"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config, library directory, and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "install",
				Usage: "Download a managed yt-dlp binary when none is on PATH",
			},
		},
		Action: r.Setup,
	}
}

// Setup creates the config file, the download directory, and the catalog
// database, then runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.loadOrCreateConfig(configPath)
	r.config = config

	if err := os.MkdirAll(config.Library.DownloadDir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	r.logger.Info("download directory ready", "path", config.Library.DownloadDir)

	if dir := filepath.Dir(config.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if cmd.Bool("install") {
		r.logger.Info("ensuring yt-dlp binary is available")
		if err := provider.Install(ctx); err != nil {
			return err
		}
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// loadOrCreateConfig loads configPath, creating it from the template when
// missing. Any failure falls back to defaults rather than aborting setup.
func (r *Runner) loadOrCreateConfig(configPath string) *shared.Config {
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			return shared.DefaultConfig()
		}
		return config
	}

	r.logger.Info("config file not found, creating from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warn("failed to create config file, using defaults", "error", err)
		return shared.DefaultConfig()
	}

	r.logger.Info("config file created", "path", configPath)
	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load created config, using defaults", "error", err)
		return shared.DefaultConfig()
	}

	return config
}
