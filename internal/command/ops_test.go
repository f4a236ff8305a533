package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snapdiff/snapdiff/internal/stream"
)

func TestListOps(t *testing.T) {
	var buf bytes.Buffer
	listOps(&buf, []stream.Op{
		stream.PathOnly{Kind: stream.CmdMkfile, Path: "a/b"},
		stream.Rename{Path: "a/b", PathTo: "a/c"},
		stream.UpdateExtent{Path: "a/c", Offset: 0, Size: 4096},
		stream.End{Offset: 120, Length: 120},
	})

	out := buf.String()
	assert.Contains(t, out, "mkfile")
	assert.Contains(t, out, "a/b -> a/c")
	assert.Contains(t, out, "update_extent")
	assert.Contains(t, out, "range (120, 120)")
}

func TestDescribeOp(t *testing.T) {
	tests := []struct {
		op   stream.Op
		want string
	}{
		{stream.Noop{}, ""},
		{stream.Chown{Path: "f", UID: 1, GID: 2}, "f 1:2"},
		{stream.Truncate{Path: "f", Size: 1024}, "f to 1.0 kB"},
		{stream.Symlink{Path: "l", Target: "t"}, "l -> t"},
		{stream.RemoveXattr{Path: "f", Name: "user.k"}, "f user.k"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describeOp(tt.op))
	}
}
