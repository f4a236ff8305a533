// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import "time"

// Op is one decoded send-stream command. Each command kind has its own
// concrete type carrying exactly the fields its schema defines; consumers
// switch on the concrete type (or on Cmd() for grouped handling).
type Op interface {
	Cmd() Cmd
}

// Noop is an unspec command. It carries nothing but still occupies a
// command index so history entries stay aligned with the operation list.
type Noop struct{}

func (Noop) Cmd() Cmd { return CmdUnspec }

// Subvol starts a full (non-incremental) subvolume stream.
type Subvol struct {
	Path     string
	UUID     string
	CTransID uint64
}

func (Subvol) Cmd() Cmd { return CmdSubvol }

// Snapshot starts an incremental stream against a clone source.
type Snapshot struct {
	Path          string
	UUID          string
	CTransID      uint64
	CloneUUID     string
	CloneCTransID uint64
}

func (Snapshot) Cmd() Cmd { return CmdSnapshot }

// PathOnly covers the create and remove commands whose schema is nothing
// but a path: mkfile, mkdir, mkfifo, mksock, unlink and rmdir.
type PathOnly struct {
	Kind Cmd
	Path string
}

func (o PathOnly) Cmd() Cmd { return o.Kind }

// Mknod creates a device or other special inode.
type Mknod struct {
	Path string
	Mode uint64
	Rdev uint64
}

func (Mknod) Cmd() Cmd { return CmdMknod }

// Symlink creates a symbolic link at Path pointing at Target.
type Symlink struct {
	Path   string
	Ino    uint64
	Target string
}

func (Symlink) Cmd() Cmd { return CmdSymlink }

// Link creates a hard link at Path to Target.
type Link struct {
	Path   string
	Target string
}

func (Link) Cmd() Cmd { return CmdLink }

// Rename moves Path to PathTo.
type Rename struct {
	Path   string
	PathTo string
}

func (Rename) Cmd() Cmd { return CmdRename }

// SetXattr sets an extended attribute.
type SetXattr struct {
	Path string
	Name string
	Data []byte
}

func (SetXattr) Cmd() Cmd { return CmdSetXattr }

// RemoveXattr removes an extended attribute.
type RemoveXattr struct {
	Path string
	Name string
}

func (RemoveXattr) Cmd() Cmd { return CmdRemoveXattr }

// Write writes Data at Offset. Streams generated with --no-data carry
// update_extent commands instead.
type Write struct {
	Path   string
	Offset uint64
	Data   []byte
}

func (Write) Cmd() Cmd { return CmdWrite }

// Clone reflinks Len bytes at Offset from SrcPath in the origin subvolume.
type Clone struct {
	Path        string
	Offset      uint64
	Len         uint64
	SrcUUID     string
	SrcCTransID uint64
	SrcPath     string
	SrcOffset   uint64
}

func (Clone) Cmd() Cmd { return CmdClone }

// Truncate truncates Path to Size bytes.
type Truncate struct {
	Path string
	Size uint64
}

func (Truncate) Cmd() Cmd { return CmdTruncate }

// Chmod sets the file mode.
type Chmod struct {
	Path string
	Mode uint64
}

func (Chmod) Cmd() Cmd { return CmdChmod }

// Chown sets ownership.
type Chown struct {
	Path string
	UID  uint64
	GID  uint64
}

func (Chown) Cmd() Cmd { return CmdChown }

// Utimes sets access, modification and change times.
type Utimes struct {
	Path  string
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
}

func (Utimes) Cmd() Cmd { return CmdUtimes }

// UpdateExtent reports that Size bytes changed at Offset without carrying
// the data (--no-data streams).
type UpdateExtent struct {
	Path   string
	Offset uint64
	Size   uint64
}

func (UpdateExtent) Cmd() Cmd { return CmdUpdateExtent }

// End terminates the stream. Offset is the cursor position just past the
// terminator's command header and Length is the full buffer length.
type End struct {
	Offset int
	Length int
}

func (End) Cmd() Cmd { return CmdEnd }
