// Package ui provides the terminal interface of the CodeXRays viewer.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. It owns the ingest pipeline, the
// item store, the list navigation state and the tailer; Bubble Tea delivers
// every message on one goroutine, so none of them lock.
//
// # Frame Cadence
//
// A tickMsg fires every 20ms. Each tick:
//
//  1. Drains newly appended log lines into the store, unless paused
//  2. Samples the events-per-second meter (at most twice a second)
//  3. Re-synchronises the selection with the visible order
//  4. Refreshes the detail viewport when it is open
//  5. Schedules the next tick
//
// # Screens
//
//   - List: header with counters, optional "newer logs" banner, item blocks
//     (the selected one reversed), the last few recent log lines and a
//     footer with key help
//   - Detail: the full text of one item in a scrolling viewport, with
//     optional JSON pretty-printing and wrapping
//   - Help: a centered overlay listing every binding
//
// # Package Structure
//
//   - app.go: Model, Options, message handling, key dispatch and Run
//   - list.go: list layout and rendering
//   - detail.go: detail view
//   - keys.go: key bindings
//   - help.go: help overlay
//   - theme.go: Dracula and Slate palettes mapped to preview styles
//   - style_helpers.go: background-safe rendering
//   - output.go: terminal writer shared by the renderer and clipboard copies
package ui
