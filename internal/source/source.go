// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/log"
)

// ReadFile reads a stream file fully into memory. When remove is set the
// file is deleted after a successful read; a failed delete is reported but
// does not fail the run, since the buffer is already in hand.
func ReadFile(path string, remove bool) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stream %s: %w", path, err)
	}

	if remove {
		if err := os.Remove(path); err != nil {
			log.Warnf("could not delete stream file %s: %v", path, err)
			fmt.Fprintf(os.Stderr, "warning: could not delete stream file %s\n", path)
		}
	}

	return buf, nil
}

// Generate runs btrfs send to produce the difference stream between parent
// and child, writes it to a temporary file and returns its contents. The
// temporary file is always removed. The btrfs binary defaults to "btrfs"
// and can be overridden with the diff.btrfs config key.
func Generate(ctx context.Context, parent, child string) ([]byte, error) {
	bin, _ := config.GetString("btrfs", "btrfs")

	tmp, err := os.CreateTemp("", "snapdiff-*.stream")
	if err != nil {
		return nil, fmt.Errorf("create stream temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close stream temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, "send", "-p", parent, "--no-data",
		"-f", tmp.Name(), child)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	log.Debugf("running: %v", cmd.Args)
	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp.Name())
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s send failed: %w: %s", bin, err, msg)
		}
		return nil, fmt.Errorf("%s send failed: %w", bin, err)
	}

	return ReadFile(tmp.Name(), true)
}
