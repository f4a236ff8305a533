// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import "strconv"

// Cmd is a send-stream command identifier. The values are the wire-protocol
// discriminants from btrfs/send.h and must not be reordered.
type Cmd uint16

const (
	CmdUnspec Cmd = iota
	CmdSubvol
	CmdSnapshot
	CmdMkfile
	CmdMkdir
	CmdMknod
	CmdMkfifo
	CmdMksock
	CmdSymlink
	CmdRename
	CmdLink
	CmdUnlink
	CmdRmdir
	CmdSetXattr
	CmdRemoveXattr
	CmdWrite
	CmdClone
	CmdTruncate
	CmdChmod
	CmdChown
	CmdUtimes
	CmdEnd
	CmdUpdateExtent
)

// CmdRenamedFrom never appears on the wire. It is synthesized onto a rename
// destination's history so the renderer can report provenance there without
// a second pass over the command list.
const CmdRenamedFrom Cmd = 0x100

var cmdNames = map[Cmd]string{
	CmdUnspec:       "unspec",
	CmdSubvol:       "subvol",
	CmdSnapshot:     "snapshot",
	CmdMkfile:       "mkfile",
	CmdMkdir:        "mkdir",
	CmdMknod:        "mknod",
	CmdMkfifo:       "mkfifo",
	CmdMksock:       "mksock",
	CmdSymlink:      "symlink",
	CmdRename:       "rename",
	CmdLink:         "link",
	CmdUnlink:       "unlink",
	CmdRmdir:        "rmdir",
	CmdSetXattr:     "set_xattr",
	CmdRemoveXattr:  "remove_xattr",
	CmdWrite:        "write",
	CmdClone:        "clone",
	CmdTruncate:     "truncate",
	CmdChmod:        "chmod",
	CmdChown:        "chown",
	CmdUtimes:       "utimes",
	CmdEnd:          "end",
	CmdUpdateExtent: "update_extent",
	CmdRenamedFrom:  "renamed_from",
}

func (c Cmd) String() string {
	if name, ok := cmdNames[c]; ok {
		return name
	}
	return "cmd(" + strconv.Itoa(int(c)) + ")"
}
