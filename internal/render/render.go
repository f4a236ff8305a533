// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"time"

	"github.com/snapdiff/snapdiff/internal/stream"
)

// RootName is the sentinel used for the subvolume root, which the stream
// addresses as the empty path.
const RootName = "__sub_root__"

const timeLayout = "2006/01/02 15:04:05"

// Options controls rendering.
type Options struct {
	// Filter suppresses confirmed temporary-file lifecycles, collapses
	// rename-over-unlink rewrites and keeps only the latest of consecutive
	// timestamp updates.
	Filter bool
}

// PathDiff is the rendered change set for one path.
type PathDiff struct {
	Path      string   `json:"path" yaml:"path"`
	Actions   []string `json:"actions" yaml:"actions"`
	Anomalous bool     `json:"anomalous,omitempty" yaml:"anomalous,omitempty"`
}

// Diff walks the decoded stream's path histories in first-reference order
// and renders one PathDiff per surviving path.
func Diff(d *stream.Decoder, opts Options) []PathDiff {
	var diffs []PathDiff
	for _, path := range d.Hist.Paths() {
		entries := d.Hist.Entries(path)

		if opts.Filter && IsTempName(path) {
			if ephemeral(entries) {
				continue
			}
			// A temp-named path that does not follow a known disposable
			// lifecycle still prints, marked so the anomaly is visible.
			diffs = append(diffs, PathDiff{
				Path:      path,
				Actions:   actions(d, entries, opts),
				Anomalous: true,
			})
			continue
		}

		name := path
		if name == "" {
			name = RootName
		}
		diffs = append(diffs, PathDiff{Path: name, Actions: actions(d, entries, opts)})
	}
	return diffs
}

// actions renders one path's history into action lines, coalescing runs of
// update_extent entries into a single covered-range line.
func actions(d *stream.Decoder, entries []stream.Entry, opts Options) []string {
	var (
		acts    []string
		extents []stream.UpdateExtent
		prev    stream.Cmd
		prevOK  bool
	)

	flush := func() {
		if len(extents) == 0 {
			return
		}
		first, last := extents[0], extents[len(extents)-1]
		acts = append(acts, fmt.Sprintf("update extents %d -> %d",
			first.Offset, last.Offset+last.Size))
		extents = extents[:0]
	}

	for _, e := range entries {
		op := d.Ops[e.Index]
		if e.Event != stream.CmdUpdateExtent {
			flush()
		}

		switch e.Event {
		case stream.CmdRenamedFrom:
			origin := op.(stream.Rename).Path
			if opts.Filter && IsTempName(origin) {
				// The entry arriving from a temp name means the file was
				// written out-of-place. An unlink immediately before it is
				// the old version going away, so the pair reads as a
				// rewrite; otherwise the path is simply new.
				if prevOK && prev == stream.CmdUnlink {
					acts[len(acts)-1] = "rewritten"
				} else {
					acts = append(acts, "created")
				}
			} else {
				acts = append(acts, "renamed from "+origin)
			}

		case stream.CmdUpdateExtent:
			extents = append(extents, op.(stream.UpdateExtent))

		case stream.CmdUtimes:
			if opts.Filter && prevOK && prev == stream.CmdUtimes {
				// Keep only the most recent of consecutive time updates.
				acts = acts[:len(acts)-1]
			}
			u := op.(stream.Utimes)
			acts = append(acts, fmt.Sprintf("times a=%s m=%s c=%s",
				fmtTime(u.Atime), fmtTime(u.Mtime), fmtTime(u.Ctime)))

		default:
			acts = append(acts, actionLine(e.Event, op))
		}

		prev, prevOK = e.Event, true
	}
	flush()

	return acts
}

// actionLine maps a single non-coalesced event to its fixed one-line
// template.
func actionLine(event stream.Cmd, op stream.Op) string {
	switch o := op.(type) {
	case stream.PathOnly:
		return event.String()
	case stream.Rename:
		return "rename to " + o.PathTo
	case stream.Symlink:
		return fmt.Sprintf("symlink to %q", o.Target)
	case stream.Link:
		return fmt.Sprintf("link to %q", o.Target)
	case stream.SetXattr:
		return fmt.Sprintf("xattr %s %q", o.Name, o.Data)
	case stream.RemoveXattr:
		return "remove xattr " + o.Name
	case stream.Truncate:
		return fmt.Sprintf("truncate %d", o.Size)
	case stream.Chown:
		return fmt.Sprintf("owner %d:%d", o.UID, o.GID)
	case stream.Chmod:
		return fmt.Sprintf("mode %d", o.Mode)
	case stream.Mknod:
		return fmt.Sprintf("mknod mode %d rdev %d", o.Mode, o.Rdev)
	case stream.Write:
		return fmt.Sprintf("write %d bytes at %d", len(o.Data), o.Offset)
	case stream.Clone:
		return fmt.Sprintf("clone from %q at %d len %d", o.SrcPath, o.SrcOffset, o.Len)
	case stream.Snapshot:
		return fmt.Sprintf("snapshot: uuid=%s, ctransid=%d, clone_uuid=%s, clone_ctransid=%d",
			o.UUID, o.CTransID, o.CloneUUID, o.CloneCTransID)
	case stream.Subvol:
		return fmt.Sprintf("subvolume: uuid=%s, ctransid=%d", o.UUID, o.CTransID)
	default:
		return event.String()
	}
}

func fmtTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
