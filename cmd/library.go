package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jabberjabberjabber/llm-jukebox/internal/formatter"
	"github.com/jabberjabberjabber/llm-jukebox/internal/jukebox"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and manage the local music library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cataloged tracks, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of tracks to list",
						Value:   jukebox.DefaultListLimit,
					},
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Only list tracks whose artist contains this text",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Only list tracks whose title or artist contains this text",
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file (.csv, .md, .json, or text)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the listing as JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:      "play",
				Usage:     "Play a cataloged track by ID or title",
				ArgsUsage: "<id-or-title>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the result as JSON",
					},
					&cli.BoolFlag{
						Name:    "wait",
						Aliases: []string{"w"},
						Usage:   "Block until the song finishes playing",
					},
				},
				Action: r.LibraryPlay,
			},
			{
				Name:  "reconcile",
				Usage: "Remove catalog entries whose audio files are missing",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the stats as JSON",
					},
				},
				Action: r.LibraryReconcile,
			},
		},
	}
}

// LibraryList prints the catalog listing, optionally filtered and exported.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	tracks, err := r.engine.ListLibrary(jukebox.ListOptions{
		Limit:  int(cmd.Int("limit")),
		Artist: cmd.String("artist"),
		Search: cmd.String("search"),
	})
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	if exportPath := cmd.String("export"); exportPath != "" {
		written, err := formatter.WriteLibraryExport(tracks, exportPath)
		if err != nil {
			return err
		}
		return r.writePlain("Exported %d tracks to %s\n", len(tracks), written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}

	return r.writeBytes(formatter.LibraryToText(tracks))
}

// LibraryPlay plays a cataloged track addressed by ID or title substring.
func (r *Runner) LibraryPlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	identifier := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("%w: a track ID or title is required", shared.ErrMissingArgument)
	}

	outcome := r.engine.PlayFromLibrary(identifier)

	if err := r.writeOutcome(outcome, cmd.Bool("json")); err != nil {
		return err
	}

	if outcome.Status == jukebox.StatusPlaying && cmd.Bool("wait") {
		return r.engine.Wait(ctx)
	}

	return nil
}

// LibraryReconcile verifies every catalog entry against the filesystem.
func (r *Runner) LibraryReconcile(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	stats := r.engine.Reconcile()

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	return r.writeBytes(formatter.StatsToText(stats))
}
