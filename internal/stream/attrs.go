// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import "strconv"

// attr is a TLV attribute identifier. The values are the wire-protocol
// discriminants from btrfs/send.h and must not be reordered.
type attr uint16

const (
	attrUnspec attr = iota
	attrUUID
	attrCTransID
	attrIno
	attrSize
	attrMode
	attrUID
	attrGID
	attrRdev
	attrCtime
	attrMtime
	attrAtime
	attrOtime
	attrXattrName
	attrXattrData
	attrPath
	attrPathTo
	attrPathLink
	attrFileOffset
	attrData
	attrCloneUUID
	attrCloneCTransID
	attrClonePath
	attrCloneOffset
	attrCloneLen
)

var attrNames = map[attr]string{
	attrUnspec:        "unspec",
	attrUUID:          "uuid",
	attrCTransID:      "ctransid",
	attrIno:           "ino",
	attrSize:          "size",
	attrMode:          "mode",
	attrUID:           "uid",
	attrGID:           "gid",
	attrRdev:          "rdev",
	attrCtime:         "ctime",
	attrMtime:         "mtime",
	attrAtime:         "atime",
	attrOtime:         "otime",
	attrXattrName:     "xattr_name",
	attrXattrData:     "xattr_data",
	attrPath:          "path",
	attrPathTo:        "path_to",
	attrPathLink:      "path_link",
	attrFileOffset:    "file_offset",
	attrData:          "data",
	attrCloneUUID:     "clone_uuid",
	attrCloneCTransID: "clone_ctransid",
	attrClonePath:     "clone_path",
	attrCloneOffset:   "clone_offset",
	attrCloneLen:      "clone_len",
}

func (a attr) String() string {
	if name, ok := attrNames[a]; ok {
		return name
	}
	return "attr(" + strconv.Itoa(int(a)) + ")"
}
