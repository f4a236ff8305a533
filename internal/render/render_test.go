// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package render

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/stream"
)

// fixture builds a Decoder equivalent from an operation list, indexing the
// history exactly the way the decode pass would.
func fixture(ops ...stream.Op) *stream.Decoder {
	hist := stream.NewHistory()
	for i, op := range ops {
		switch o := op.(type) {
		case stream.Rename:
			hist.Add(o.PathTo, stream.CmdRenamedFrom, i)
			hist.Add(o.Path, stream.CmdRename, i)
		case stream.PathOnly:
			hist.Add(o.Path, o.Kind, i)
		case stream.UpdateExtent:
			hist.Add(o.Path, stream.CmdUpdateExtent, i)
		case stream.Utimes:
			hist.Add(o.Path, stream.CmdUtimes, i)
		case stream.Truncate:
			hist.Add(o.Path, stream.CmdTruncate, i)
		case stream.Chown:
			hist.Add(o.Path, stream.CmdChown, i)
		case stream.Chmod:
			hist.Add(o.Path, stream.CmdChmod, i)
		case stream.Symlink:
			hist.Add(o.Path, stream.CmdSymlink, i)
		case stream.Link:
			hist.Add(o.Path, stream.CmdLink, i)
		case stream.SetXattr:
			hist.Add(o.Path, stream.CmdSetXattr, i)
		case stream.Snapshot:
			hist.Add(o.Path, stream.CmdSnapshot, i)
		case stream.End:
			// no path
		}
	}
	return &stream.Decoder{Ops: ops, Hist: hist}
}

func utimes(path string, sec int64) stream.Utimes {
	ts := time.Unix(sec, 0)
	return stream.Utimes{Path: path, Atime: ts, Mtime: ts, Ctime: ts}
}

func timesLine(sec int64) string {
	s := time.Unix(sec, 0).Local().Format(timeLayout)
	return fmt.Sprintf("times a=%s m=%s c=%s", s, s, s)
}

func TestDiffMkfileRename(t *testing.T) {
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "a/b"},
		stream.Rename{Path: "a/b", PathTo: "a/c"},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 2)

	assert.Equal(t, "a/b", diffs[0].Path)
	assert.Equal(t, []string{"mkfile", "rename to a/c"}, diffs[0].Actions)

	assert.Equal(t, "a/c", diffs[1].Path)
	assert.Equal(t, []string{"renamed from a/b"}, diffs[1].Actions)
}

func TestDiffExtentCoalescing(t *testing.T) {
	d := fixture(
		stream.UpdateExtent{Path: "f", Offset: 0, Size: 100},
		stream.UpdateExtent{Path: "f", Offset: 100, Size: 100},
		stream.UpdateExtent{Path: "f", Offset: 200, Size: 50},
		utimes("f", 1700000000),
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 1)
	assert.Equal(t, []string{
		"update extents 0 -> 250",
		timesLine(1700000000),
	}, diffs[0].Actions)
}

func TestDiffExtentTrailingRunFlushes(t *testing.T) {
	// A run that reaches the end of the history still collapses to one line.
	d := fixture(
		stream.Truncate{Path: "f", Size: 0},
		stream.UpdateExtent{Path: "f", Offset: 4096, Size: 4096},
		stream.UpdateExtent{Path: "f", Offset: 8192, Size: 4096},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 1)
	assert.Equal(t, []string{
		"truncate 0",
		"update extents 4096 -> 12288",
	}, diffs[0].Actions)
}

func TestDiffSeparateExtentRunsStaySeparate(t *testing.T) {
	d := fixture(
		stream.UpdateExtent{Path: "f", Offset: 0, Size: 10},
		stream.Truncate{Path: "f", Size: 10},
		stream.UpdateExtent{Path: "f", Offset: 50, Size: 10},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 1)
	assert.Equal(t, []string{
		"update extents 0 -> 10",
		"truncate 10",
		"update extents 50 -> 60",
	}, diffs[0].Actions)
}

func TestDiffUtimesCollapseInFilterMode(t *testing.T) {
	d := fixture(
		utimes("f", 1700000000),
		utimes("f", 1700000100),
		utimes("f", 1700000200),
	)

	filtered := Diff(d, Options{Filter: true})
	require.Len(t, filtered, 1)
	assert.Equal(t, []string{timesLine(1700000200)}, filtered[0].Actions)

	// Without filtering all three survive.
	plain := Diff(d, Options{})
	assert.Len(t, plain[0].Actions, 3)
}

func TestDiffRewrittenCollapse(t *testing.T) {
	// unlink followed by a rename in from a temp name reads as a rewrite in
	// filter mode.
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "o123-45-0"},
		stream.PathOnly{Kind: stream.CmdUnlink, Path: "etc/passwd"},
		stream.Rename{Path: "o123-45-0", PathTo: "etc/passwd"},
	)

	diffs := Diff(d, Options{Filter: true})
	require.Len(t, diffs, 1)
	assert.Equal(t, "etc/passwd", diffs[0].Path)
	assert.Equal(t, []string{"rewritten"}, diffs[0].Actions)
}

func TestDiffCreatedFromTemp(t *testing.T) {
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "o123-45-0"},
		stream.Rename{Path: "o123-45-0", PathTo: "etc/new.conf"},
	)

	diffs := Diff(d, Options{Filter: true})
	require.Len(t, diffs, 1)
	assert.Equal(t, "etc/new.conf", diffs[0].Path)
	assert.Equal(t, []string{"created"}, diffs[0].Actions)

	// Outside filter mode the provenance is kept verbatim.
	plain := Diff(d, Options{})
	require.Len(t, plain, 2)
	assert.Equal(t, []string{"renamed from o123-45-0"}, plain[1].Actions)
}

func TestDiffTempPathSuppression(t *testing.T) {
	// Confirmed ephemeral lifecycle: created, then renamed into place.
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "o7-9-0"},
		stream.Rename{Path: "o7-9-0", PathTo: "real"},
	)

	diffs := Diff(d, Options{Filter: true})
	require.Len(t, diffs, 1)
	assert.Equal(t, "real", diffs[0].Path)

	// Without filtering the temp path is reported like any other.
	plain := Diff(d, Options{})
	assert.Len(t, plain, 2)
}

func TestDiffTempPathAnomalyStillPrints(t *testing.T) {
	// Temp-named path whose history does not match a known disposable
	// shape: must not be silently dropped.
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "o7-9-0"},
		stream.Chmod{Path: "o7-9-0", Mode: 420},
	)

	diffs := Diff(d, Options{Filter: true})
	require.Len(t, diffs, 1)
	assert.Equal(t, "o7-9-0", diffs[0].Path)
	assert.True(t, diffs[0].Anomalous)
	assert.Equal(t, []string{"mkfile", "mode 420"}, diffs[0].Actions)
}

func TestDiffRootSentinel(t *testing.T) {
	d := fixture(
		stream.Snapshot{Path: "", UUID: "u", CTransID: 1, CloneUUID: "c", CloneCTransID: 2},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 1)
	assert.Equal(t, RootName, diffs[0].Path)
	assert.Equal(t,
		[]string{"snapshot: uuid=u, ctransid=1, clone_uuid=c, clone_ctransid=2"},
		diffs[0].Actions)
}

func TestDiffActionTemplates(t *testing.T) {
	d := fixture(
		stream.Symlink{Path: "p", Ino: 1, Target: "t"},
		stream.Link{Path: "p", Target: "t2"},
		stream.SetXattr{Path: "p", Name: "user.k", Data: []byte("v")},
		stream.Chown{Path: "p", UID: 1000, GID: 100},
		stream.Truncate{Path: "p", Size: 77},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 1)
	assert.Equal(t, []string{
		`symlink to "t"`,
		`link to "t2"`,
		`xattr user.k "v"`,
		"owner 1000:100",
		"truncate 77",
	}, diffs[0].Actions)
}

func TestDiffPathOrderFollowsFirstReference(t *testing.T) {
	d := fixture(
		stream.PathOnly{Kind: stream.CmdMkdir, Path: "z"},
		stream.PathOnly{Kind: stream.CmdMkdir, Path: "a"},
		stream.Chmod{Path: "z", Mode: 493},
	)

	diffs := Diff(d, Options{})
	require.Len(t, diffs, 2)
	assert.Equal(t, "z", diffs[0].Path)
	assert.Equal(t, "a", diffs[1].Path)
}

func TestTextEmit(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, []PathDiff{
		{Path: "a/b", Actions: []string{"mkfile", "rename to a/c"}},
		{Path: "a/c", Actions: []string{"renamed from a/b"}},
	}, false)

	assert.Equal(t,
		"\na/b\n\tmkfile\n\trename to a/c\n\na/c\n\trenamed from a/b\n",
		buf.String())
}

func TestTextEmitAnomalyMarker(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, []PathDiff{
		{Path: "o1-2-0", Actions: []string{"mkfile"}, Anomalous: true},
	}, false)

	assert.Contains(t, buf.String(), "o1-2-0 "+anomalyMarker)
}

func TestCSVEmit(t *testing.T) {
	var buf bytes.Buffer
	CSV(&buf, []PathDiff{
		{Path: "a/b", Actions: []string{"mkfile", "rename to a/c"}},
		{Path: "a/c", Actions: []string{"renamed from a/b"}},
	})

	assert.Equal(t,
		"a/b;mkfile;rename to a/c\na/c;renamed from a/b\n",
		buf.String())
}

func TestJSONEmit(t *testing.T) {
	var buf bytes.Buffer
	err := JSON(&buf, []PathDiff{{Path: "p", Actions: []string{"mkfile"}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"path": "p"`)
	assert.Contains(t, buf.String(), `"mkfile"`)
}

func TestYAMLEmit(t *testing.T) {
	var buf bytes.Buffer
	err := YAML(&buf, []PathDiff{{Path: "p", Actions: []string{"mkfile"}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "path: p")
}
