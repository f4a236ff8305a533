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
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/source"
	"github.com/snapdiff/snapdiff/internal/stream"
)

// opsCommandAction is the action handler for the "ops" subcommand. It
// decodes a stream file and lists every command with its index, kind and
// salient fields. Useful when the summarized diff hides something.
func opsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "ops"

	file := cmd.String("file")
	if file == "" {
		return errors.New("--file is required")
	}

	buf, err := source.ReadFile(file, cmd.Bool("delete"))
	if err != nil {
		return err
	}

	d, err := stream.Decode(buf)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "stream version %d, %d commands, %d paths\n",
		d.Header.Version, len(d.Ops), d.Hist.Len())
	listOps(os.Stdout, d.Ops)

	return nil
}

// listOps prints one line per operation.
func listOps(w io.Writer, ops []stream.Op) {
	for i, op := range ops {
		fmt.Fprintf(w, "%6d  %-13s %s\n", i, op.Cmd(), describeOp(op))
	}
}

// describeOp renders an operation's fields for the ops listing.
func describeOp(op stream.Op) string {
	switch o := op.(type) {
	case stream.Noop:
		return ""
	case stream.Subvol:
		return fmt.Sprintf("%s uuid=%s ctransid=%d", o.Path, o.UUID, o.CTransID)
	case stream.Snapshot:
		return fmt.Sprintf("%s uuid=%s ctransid=%d clone_uuid=%s clone_ctransid=%d",
			o.Path, o.UUID, o.CTransID, o.CloneUUID, o.CloneCTransID)
	case stream.PathOnly:
		return o.Path
	case stream.Mknod:
		return fmt.Sprintf("%s mode=%d rdev=%d", o.Path, o.Mode, o.Rdev)
	case stream.Symlink:
		return fmt.Sprintf("%s -> %s", o.Path, o.Target)
	case stream.Link:
		return fmt.Sprintf("%s -> %s", o.Path, o.Target)
	case stream.Rename:
		return fmt.Sprintf("%s -> %s", o.Path, o.PathTo)
	case stream.SetXattr:
		return fmt.Sprintf("%s %s (%s)", o.Path, o.Name, humanize.Bytes(uint64(len(o.Data))))
	case stream.RemoveXattr:
		return fmt.Sprintf("%s %s", o.Path, o.Name)
	case stream.Write:
		return fmt.Sprintf("%s %s at %d", o.Path, humanize.Bytes(uint64(len(o.Data))), o.Offset)
	case stream.Clone:
		return fmt.Sprintf("%s %s at %d from %s@%d", o.Path,
			humanize.Bytes(o.Len), o.Offset, o.SrcPath, o.SrcOffset)
	case stream.Truncate:
		return fmt.Sprintf("%s to %s", o.Path, humanize.Bytes(o.Size))
	case stream.Chmod:
		return fmt.Sprintf("%s mode=%d", o.Path, o.Mode)
	case stream.Chown:
		return fmt.Sprintf("%s %d:%d", o.Path, o.UID, o.GID)
	case stream.Utimes:
		return o.Path
	case stream.UpdateExtent:
		return fmt.Sprintf("%s %s at %d", o.Path, humanize.Bytes(o.Size), o.Offset)
	case stream.End:
		return fmt.Sprintf("range (%d, %d)", o.Offset, o.Length)
	default:
		return ""
	}
}

// opsCommandBuilder constructs the "ops" subcommand.
func opsCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ops",
		Usage:     "list every decoded send-stream command",
		UsageText: "snapdiff ops -f stream-file",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "stream file created with btrfs send -f",
			},
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "delete the stream file after reading it",
				Value: false,
			},
		},
		Action: opsCommandAction,
	}
}
