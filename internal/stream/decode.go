// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/snapdiff/snapdiff/internal/log"
)

// Decoder holds a fully-buffered send stream and the structures built from
// it. All fields are read-only once Decode returns.
type Decoder struct {
	buf []byte

	Header Header
	Ops    []Op
	Hist   *History
}

// Decode parses the entire buffer in one pass: header first, then commands
// until the end command. The history index is built as a side effect of the
// same pass. Any failure aborts the decode; there is no partial result.
func Decode(buf []byte) (*Decoder, error) {
	hdr, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	d := &Decoder{buf: buf, Header: hdr, Hist: NewHistory()}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d, nil
}

// run drives the main decode loop. Each iteration reads the fixed command
// header, dispatches on the command id, and advances the cursor by the
// header length plus the declared body length. The declared length governs
// the advance, not the bytes attribute parsing consumed, so attributes a
// command's schema does not model are skipped without affecting subsequent
// parsing.
func (d *Decoder) run() error {
	off := headerLen
	for {
		if off+cmdHeaderLen > len(d.buf) {
			return truncated(off)
		}
		bodyLen := int(binary.LittleEndian.Uint32(d.buf[off:]))
		cmd := Cmd(binary.LittleEndian.Uint16(d.buf[off+4:]))
		// The crc occupies d.buf[off+6:off+10]. It is read off the wire but
		// intentionally never verified; reference decoders tolerate
		// unverified streams.
		body := off + cmdHeaderLen

		if cmd == CmdEnd {
			d.Ops = append(d.Ops, End{Offset: body, Length: len(d.buf)})
			log.Debugf("stream end: ops=%d paths=%d", len(d.Ops), d.Hist.Len())
			return nil
		}

		op, err := d.decodeOne(cmd, body, off)
		if err != nil {
			return err
		}
		index := len(d.Ops)
		d.Ops = append(d.Ops, op)
		d.record(op, index)

		off = body + bodyLen
	}
}

// decodeOne decodes the body of a single non-terminal command starting at
// body. Each command's schema is a fixed ordered attribute list; unknown
// command ids are fatal.
func (d *Decoder) decodeOne(cmd Cmd, body, cmdStart int) (Op, error) {
	switch cmd {
	case CmdUnspec:
		return Noop{}, nil

	case CmdSubvol:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, id, err := d.tlvUUID(next, attrUUID)
		if err != nil {
			return nil, err
		}
		_, ctransid, err := d.tlvU64(next, attrCTransID)
		if err != nil {
			return nil, err
		}
		return Subvol{Path: path, UUID: id, CTransID: ctransid}, nil

	case CmdSnapshot:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, id, err := d.tlvUUID(next, attrUUID)
		if err != nil {
			return nil, err
		}
		next, ctransid, err := d.tlvU64(next, attrCTransID)
		if err != nil {
			return nil, err
		}
		next, cloneID, err := d.tlvUUID(next, attrCloneUUID)
		if err != nil {
			return nil, err
		}
		_, cloneCTransid, err := d.tlvU64(next, attrCloneCTransID)
		if err != nil {
			return nil, err
		}
		return Snapshot{
			Path: path, UUID: id, CTransID: ctransid,
			CloneUUID: cloneID, CloneCTransID: cloneCTransid,
		}, nil

	case CmdMkfile, CmdMkdir, CmdMkfifo, CmdMksock, CmdUnlink, CmdRmdir:
		_, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		return PathOnly{Kind: cmd, Path: path}, nil

	case CmdMknod:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, mode, err := d.tlvU64(next, attrMode)
		if err != nil {
			return nil, err
		}
		_, rdev, err := d.tlvU64(next, attrRdev)
		if err != nil {
			return nil, err
		}
		return Mknod{Path: path, Mode: mode, Rdev: rdev}, nil

	case CmdSymlink:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, ino, err := d.tlvU64(next, attrIno)
		if err != nil {
			return nil, err
		}
		_, target, err := d.tlvString(next, attrPathLink)
		if err != nil {
			return nil, err
		}
		return Symlink{Path: path, Ino: ino, Target: target}, nil

	case CmdLink:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		_, target, err := d.tlvString(next, attrPathLink)
		if err != nil {
			return nil, err
		}
		return Link{Path: path, Target: target}, nil

	case CmdRename:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		_, pathTo, err := d.tlvString(next, attrPathTo)
		if err != nil {
			return nil, err
		}
		return Rename{Path: path, PathTo: pathTo}, nil

	case CmdSetXattr:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, name, err := d.tlvString(next, attrXattrName)
		if err != nil {
			return nil, err
		}
		_, data, err := d.tlvBytes(next, attrXattrData)
		if err != nil {
			return nil, err
		}
		return SetXattr{Path: path, Name: name, Data: data}, nil

	case CmdRemoveXattr:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		_, name, err := d.tlvString(next, attrXattrName)
		if err != nil {
			return nil, err
		}
		return RemoveXattr{Path: path, Name: name}, nil

	case CmdWrite:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, offset, err := d.tlvU64(next, attrFileOffset)
		if err != nil {
			return nil, err
		}
		_, data, err := d.tlvBytes(next, attrData)
		if err != nil {
			return nil, err
		}
		return Write{Path: path, Offset: offset, Data: data}, nil

	case CmdClone:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, offset, err := d.tlvU64(next, attrFileOffset)
		if err != nil {
			return nil, err
		}
		next, cloneLen, err := d.tlvU64(next, attrCloneLen)
		if err != nil {
			return nil, err
		}
		next, srcUUID, err := d.tlvUUID(next, attrCloneUUID)
		if err != nil {
			return nil, err
		}
		next, srcCTransid, err := d.tlvU64(next, attrCloneCTransID)
		if err != nil {
			return nil, err
		}
		next, srcPath, err := d.tlvString(next, attrClonePath)
		if err != nil {
			return nil, err
		}
		_, srcOffset, err := d.tlvU64(next, attrCloneOffset)
		if err != nil {
			return nil, err
		}
		return Clone{
			Path: path, Offset: offset, Len: cloneLen,
			SrcUUID: srcUUID, SrcCTransID: srcCTransid,
			SrcPath: srcPath, SrcOffset: srcOffset,
		}, nil

	case CmdTruncate:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		_, size, err := d.tlvU64(next, attrSize)
		if err != nil {
			return nil, err
		}
		return Truncate{Path: path, Size: size}, nil

	case CmdChmod:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		_, mode, err := d.tlvU64(next, attrMode)
		if err != nil {
			return nil, err
		}
		return Chmod{Path: path, Mode: mode}, nil

	case CmdChown:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, uid, err := d.tlvU64(next, attrUID)
		if err != nil {
			return nil, err
		}
		_, gid, err := d.tlvU64(next, attrGID)
		if err != nil {
			return nil, err
		}
		return Chown{Path: path, UID: uid, GID: gid}, nil

	case CmdUtimes:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, atime, err := d.tlvTime(next, attrAtime)
		if err != nil {
			return nil, err
		}
		next, mtime, err := d.tlvTime(next, attrMtime)
		if err != nil {
			return nil, err
		}
		_, ctime, err := d.tlvTime(next, attrCtime)
		if err != nil {
			return nil, err
		}
		return Utimes{Path: path, Atime: atime, Mtime: mtime, Ctime: ctime}, nil

	case CmdUpdateExtent:
		next, path, err := d.tlvString(body, attrPath)
		if err != nil {
			return nil, err
		}
		next, offset, err := d.tlvU64(next, attrFileOffset)
		if err != nil {
			return nil, err
		}
		_, size, err := d.tlvU64(next, attrSize)
		if err != nil {
			return nil, err
		}
		return UpdateExtent{Path: path, Offset: offset, Size: size}, nil

	default:
		return nil, fmt.Errorf("%w: id %d at offset %d", ErrUnknownCommand, uint16(cmd), cmdStart)
	}
}

// record appends history entries for a decoded operation. Renames touch two
// paths: the destination gets a synthesized renamed_from entry before the
// source gets its rename entry, so a brand-new destination path takes its
// place in first-reference order ahead of the source.
func (d *Decoder) record(op Op, index int) {
	switch o := op.(type) {
	case Noop, End:
		// No path.
	case Rename:
		d.Hist.Add(o.PathTo, CmdRenamedFrom, index)
		d.Hist.Add(o.Path, CmdRename, index)
	case Subvol:
		d.Hist.Add(o.Path, CmdSubvol, index)
	case Snapshot:
		d.Hist.Add(o.Path, CmdSnapshot, index)
	case PathOnly:
		d.Hist.Add(o.Path, o.Kind, index)
	case Mknod:
		d.Hist.Add(o.Path, CmdMknod, index)
	case Symlink:
		d.Hist.Add(o.Path, CmdSymlink, index)
	case Link:
		d.Hist.Add(o.Path, CmdLink, index)
	case SetXattr:
		d.Hist.Add(o.Path, CmdSetXattr, index)
	case RemoveXattr:
		d.Hist.Add(o.Path, CmdRemoveXattr, index)
	case Write:
		d.Hist.Add(o.Path, CmdWrite, index)
	case Clone:
		d.Hist.Add(o.Path, CmdClone, index)
	case Truncate:
		d.Hist.Add(o.Path, CmdTruncate, index)
	case Chmod:
		d.Hist.Add(o.Path, CmdChmod, index)
	case Chown:
		d.Hist.Add(o.Path, CmdChown, index)
	case Utimes:
		d.Hist.Add(o.Path, CmdUtimes, index)
	case UpdateExtent:
		d.Hist.Add(o.Path, CmdUpdateExtent, index)
	}
}
