// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"
)

const (
	// magic is the 12-byte token plus terminating NUL that opens every
	// send stream.
	magic = "btrfs-stream\x00"

	// headerLen is magic plus the little-endian u32 format version.
	headerLen = len(magic) + 4

	// cmdHeaderLen is the fixed command header: u32 declared body length,
	// u16 command id, u32 crc.
	cmdHeaderLen = 10

	// tlvHeaderLen is the fixed attribute header: u16 id, u16 length.
	tlvHeaderLen = 4
)

// Header is the decoded stream header.
type Header struct {
	Version uint32
}

// ParseHeader validates the stream magic and extracts the format version.
// A short buffer or a magic mismatch makes the whole stream unusable.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < headerLen {
		return Header{}, fmt.Errorf("%w: %d bytes is too short", ErrFormat, len(buf))
	}
	if string(buf[:len(magic)]) != magic {
		return Header{}, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	return Header{Version: binary.LittleEndian.Uint32(buf[len(magic):headerLen])}, nil
}
