package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show metadata and the single-song verdict for a URL without downloading",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
		},
		Action: r.Info,
	}
}

// Info looks up metadata for a source URL and prints the classification.
func (r *Runner) Info(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	url := cmd.Args().First()
	if url == "" {
		return fmt.Errorf("%w: a URL is required", shared.ErrMissingArgument)
	}

	return r.writeOutcome(r.engine.Describe(ctx, url), cmd.Bool("json"))
}
