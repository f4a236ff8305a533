// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package render turns a decoded send stream into per-path diff lines and
// emits them as grouped text, CSV, JSON or YAML. Filter mode collapses the
// noise btrfs send generates: temporary-file lifecycles, redundant
// timestamp updates and rename-over-unlink rewrites.
package render
