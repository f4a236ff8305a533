package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPreservesFirstReferenceOrder(t *testing.T) {
	h := NewHistory()
	h.Add("b", CmdMkfile, 0)
	h.Add("a", CmdMkdir, 1)
	h.Add("b", CmdUtimes, 2)
	h.Add("c", CmdUnlink, 3)
	h.Add("a", CmdUtimes, 4)

	assert.Equal(t, []string{"b", "a", "c"}, h.Paths())
	assert.Equal(t, 3, h.Len())
}

func TestHistoryEntriesKeepDecodeOrder(t *testing.T) {
	h := NewHistory()
	h.Add("p", CmdMkfile, 4)
	h.Add("p", CmdChmod, 7)
	h.Add("p", CmdUtimes, 9)

	assert.Equal(t, []Entry{
		{Event: CmdMkfile, Index: 4},
		{Event: CmdChmod, Index: 7},
		{Event: CmdUtimes, Index: 9},
	}, h.Entries("p"))
}

func TestHistoryEmptyPathIsDistinct(t *testing.T) {
	// The empty path is the subvolume root, a real key like any other.
	h := NewHistory()
	h.Add("", CmdSnapshot, 0)
	h.Add("etc", CmdMkdir, 1)

	assert.Equal(t, []string{"", "etc"}, h.Paths())
	assert.Len(t, h.Entries(""), 1)
}
