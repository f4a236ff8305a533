// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source obtains the raw send-stream buffer, either by reading a
// stream file from disk or by invoking btrfs send against a pair of
// snapshots and capturing the result. Both paths return a fully-buffered
// stream or fail atomically before any decoding starts.
package source
