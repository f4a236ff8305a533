// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"regexp"

	"github.com/snapdiff/snapdiff/internal/stream"
)

// tempName matches the synthetic names btrfs send gives entries it creates
// before renaming them into place, e.g. o261-1852-0.
var tempName = regexp.MustCompile(`^o\d+-\d+-0$`)

// IsTempName reports whether path looks like a btrfs send temporary name.
// The predicate only ever affects rendering, never decode correctness.
func IsTempName(path string) bool {
	return tempName.MatchString(path)
}

// ephemeral reports whether a temp-named path's history opens with one of
// the two known disposable lifecycles: created then renamed into place, or
// renamed into then removed. Only confirmed shapes may be suppressed;
// anything else is printed and flagged so operators can see the anomaly.
func ephemeral(entries []stream.Entry) bool {
	if len(entries) < 2 {
		return false
	}
	first, second := entries[0].Event, entries[1].Event
	switch first {
	case stream.CmdMkfile, stream.CmdMkdir, stream.CmdSymlink:
		return second == stream.CmdRename
	case stream.CmdRenamedFrom:
		return second == stream.CmdRmdir
	}
	return false
}
