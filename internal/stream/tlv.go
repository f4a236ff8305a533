// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// tlvPayload reads one attribute record at off, checks its id against want,
// and returns the cursor position past the record plus the raw payload.
// Attribute reads are strictly positional: a mismatched id aborts the whole
// decode.
func (d *Decoder) tlvPayload(off int, want attr) (int, []byte, error) {
	if off+tlvHeaderLen > len(d.buf) {
		return 0, nil, truncated(off)
	}
	id := attr(binary.LittleEndian.Uint16(d.buf[off:]))
	n := int(binary.LittleEndian.Uint16(d.buf[off+2:]))
	if id != want {
		return 0, nil, fmt.Errorf("%w: %s at offset %d, want %s", ErrAttribute, id, off, want)
	}
	end := off + tlvHeaderLen + n
	if end > len(d.buf) {
		return 0, nil, truncated(off)
	}
	return end, d.buf[off+tlvHeaderLen : end], nil
}

// tlvBytes returns the payload as an opaque byte slice.
func (d *Decoder) tlvBytes(off int, want attr) (int, []byte, error) {
	return d.tlvPayload(off, want)
}

// tlvString returns the payload as a string.
func (d *Decoder) tlvString(off int, want attr) (int, string, error) {
	next, p, err := d.tlvPayload(off, want)
	if err != nil {
		return 0, "", err
	}
	return next, string(p), nil
}

// tlvU64 returns the payload as a little-endian unsigned 64-bit integer.
func (d *Decoder) tlvU64(off int, want attr) (int, uint64, error) {
	next, p, err := d.tlvPayload(off, want)
	if err != nil {
		return 0, 0, err
	}
	if len(p) != 8 {
		return 0, 0, fmt.Errorf("%w: %s payload is %d bytes, want 8", ErrAttribute, want, len(p))
	}
	return next, binary.LittleEndian.Uint64(p), nil
}

// tlvUUID returns the 16-byte payload rendered in canonical lowercase form.
func (d *Decoder) tlvUUID(off int, want attr) (int, string, error) {
	next, p, err := d.tlvPayload(off, want)
	if err != nil {
		return 0, "", err
	}
	id, err := uuid.FromBytes(p)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s: %v", ErrAttribute, want, err)
	}
	return next, id.String(), nil
}

// tlvTime returns the payload, an 8-byte seconds field followed by a 4-byte
// nanoseconds field, as a time.Time.
func (d *Decoder) tlvTime(off int, want attr) (int, time.Time, error) {
	next, p, err := d.tlvPayload(off, want)
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(p) != 12 {
		return 0, time.Time{}, fmt.Errorf("%w: %s payload is %d bytes, want 12", ErrAttribute, want, len(p))
	}
	secs := binary.LittleEndian.Uint64(p)
	nsecs := binary.LittleEndian.Uint32(p[8:])
	return next, time.Unix(int64(secs), int64(nsecs)), nil
}
