// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"fmt"
)

// Decode failures are fatal for the whole stream. There is no partial
// recovery: callers get either a fully decoded stream or one of these.
var (
	// ErrFormat indicates the buffer is too short to hold a stream header
	// or the magic token does not match.
	ErrFormat = errors.New("not a btrfs send stream")

	// ErrTruncated indicates a read past the end of the buffer.
	ErrTruncated = errors.New("truncated send stream")

	// ErrUnknownCommand indicates a command id outside the known set.
	ErrUnknownCommand = errors.New("unknown send command")

	// ErrAttribute indicates a TLV attribute id that does not match the
	// schema's expectation at that position.
	ErrAttribute = errors.New("unexpected attribute")
)

func truncated(off int) error {
	return fmt.Errorf("%w: read past end at offset %d", ErrTruncated, off)
}
