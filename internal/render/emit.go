// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v2"
)

// anomalyMarker flags temp-named paths whose history did not match a known
// disposable lifecycle.
const anomalyMarker = "[unexpected temp file]"

// Text emits one group per path: a blank line, the path name, then one
// indented line per action. Paths are styled when colorize is set.
func Text(w io.Writer, diffs []PathDiff, colorize bool) {
	pathStyle := lipgloss.NewStyle()
	if colorize {
		pathStyle = pathStyle.Bold(true).Foreground(lipgloss.Color("6"))
	}

	for _, d := range diffs {
		name := pathStyle.Render(d.Path)
		if d.Anomalous {
			name += " " + anomalyMarker
		}
		fmt.Fprintf(w, "\n%s\n", name)
		for _, a := range d.Actions {
			fmt.Fprintf(w, "\t%s\n", a)
		}
	}
}

// CSV emits one line per path, joining the path and its actions with ";".
func CSV(w io.Writer, diffs []PathDiff) {
	for _, d := range diffs {
		fields := append([]string{d.Path}, d.Actions...)
		if d.Anomalous {
			fields = append(fields, anomalyMarker)
		}
		fmt.Fprintln(w, strings.Join(fields, ";"))
	}
}

// JSON emits the diff set as a JSON array.
func JSON(w io.Writer, diffs []PathDiff) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diffs)
}

// YAML emits the diff set as a YAML document.
func YAML(w io.Writer, diffs []PathDiff) error {
	out, err := yaml.Marshal(diffs)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
