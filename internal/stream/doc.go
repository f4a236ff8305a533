// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stream decodes the binary btrfs send stream: the stream header,
// the per-command TLV attribute records, and the full command sequence.
// Decoding also builds a per-path history index that records, in first-seen
// path order, which commands touched each path.
package stream
