// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stream

// Entry is one per-path history record: which event touched the path and
// the command index of the operation that produced it.
type Entry struct {
	Event Cmd
	Index int
}

// History is an insertion-ordered map from path to the ordered list of
// events that touched it. Iteration order over paths equals the order in
// which each path was first referenced by the stream, which in turn governs
// final output order. The empty path denotes the subvolume root.
type History struct {
	order  []string
	byPath map[string][]Entry
}

func NewHistory() *History {
	return &History{byPath: make(map[string][]Entry)}
}

// Add appends an event to path's history, registering the path on first
// reference.
func (h *History) Add(path string, event Cmd, index int) {
	if _, ok := h.byPath[path]; !ok {
		h.order = append(h.order, path)
	}
	h.byPath[path] = append(h.byPath[path], Entry{Event: event, Index: index})
}

// Paths returns all recorded paths in first-reference order.
func (h *History) Paths() []string {
	return h.order
}

// Entries returns the event list for path in decode order.
func (h *History) Entries(path string) []Entry {
	return h.byPath[path]
}

// Len returns the number of distinct paths recorded.
func (h *History) Len() int {
	return len(h.order)
}
