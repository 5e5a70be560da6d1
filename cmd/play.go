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

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Fetch a song by free-text query and play it",
		ArgsUsage: "<query>",
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
		Action: r.Play,
	}
}

func stopCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stop",
		Usage: "Stop playback",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
		},
		Action: r.Stop,
	}
}

// Play resolves the query through the engine and reports the outcome. With
// --wait the process stays alive until the song ends.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	query := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: a search query is required", shared.ErrMissingArgument)
	}

	outcome := r.engine.FetchAndPlay(ctx, query)

	if err := r.writeOutcome(outcome, cmd.Bool("json")); err != nil {
		return err
	}

	if outcome.Status == jukebox.StatusPlaying && cmd.Bool("wait") {
		return r.engine.Wait(ctx)
	}

	return nil
}

// Stop halts playback and reports whether anything was playing.
func (r *Runner) Stop(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	return r.writeOutcome(r.engine.Stop(), cmd.Bool("json"))
}

func (r *Runner) writeOutcome(outcome jukebox.Outcome, asJSON bool) error {
	if asJSON {
		return r.writeJSON(outcome, true)
	}

	return r.writeBytes(formatter.OutcomeToText(outcome))
}
