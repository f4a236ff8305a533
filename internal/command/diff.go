// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/render"
	"github.com/snapdiff/snapdiff/internal/source"
	"github.com/snapdiff/snapdiff/internal/stream"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// obtains a send stream (from a file or by running btrfs send), decodes it
// and prints the per-path differences.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	buf, err := fetchBuffer(ctx,
		cmd.String("parent"), cmd.String("child"),
		cmd.String("file"), cmd.Bool("delete"))
	if err != nil {
		return err
	}

	d, err := stream.Decode(buf)
	if err != nil {
		return err
	}
	log.Infof("valid btrfs send stream, version %d", d.Header.Version)

	diffs := render.Diff(d, render.Options{Filter: cmd.Bool("filter")})

	output := cmd.String("output")
	if cmd.Bool("csv") {
		output = "csv"
	}

	return emitDiff(os.Stdout, diffs, output, cmd.Bool("color"))
}

// fetchBuffer resolves the input source per the flag contract: a parent
// snapshot requires a child and triggers stream generation; otherwise a
// stream file is required.
func fetchBuffer(ctx context.Context, parent, child, file string, remove bool) ([]byte, error) {
	switch {
	case parent != "" && child == "":
		return nil, errors.New("--parent needs --child")
	case parent != "":
		return source.Generate(ctx, parent, child)
	case file == "":
		return nil, errors.New("either --file or --parent and --child are required")
	default:
		return source.ReadFile(file, remove)
	}
}

// emitDiff writes the rendered diff set in the requested format.
func emitDiff(w io.Writer, diffs []render.PathDiff, format string, colorize bool) error {
	switch format {
	case "csv":
		render.CSV(w, diffs)
	case "json":
		return render.JSON(w, diffs)
	case "yaml":
		return render.YAML(w, diffs)
	case "text":
		render.Text(w, diffs, colorize)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewStreamFlags("diff", m.Config.Source)
	flags = append(flags, NewSnapshotFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:    "filter",
			Aliases: []string{"t"},
			Usage:   "hide temporary files and all but the latest time modification",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "csv",
			Aliases: []string{"s"},
			Usage:   "CSV output, one line per path",
			Value:   false,
		},
	)

	return &cli.Command{
		Name:      "diff",
		Usage:     "show differences between two snapshots",
		UsageText: "snapdiff diff [-p parent -c child | -f stream-file] [options]",
		Metadata:  map[string]any{"meta": m},
		Flags:     flags,
		Action:    diffCommandAction,
	}
}
