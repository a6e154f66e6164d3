// Package config resolves the viewer's runtime settings.
//
// # Resolution Order
//
// Settings are layered, each layer overriding the one before it:
//
//  1. Built-in defaults (Default)
//  2. The config file, ~/.config/codexrays/config.toml unless a path is given
//  3. XRAYS_* environment variables, skipped for any setting whose flag was
//     passed explicitly
//  4. Command-line flags, applied by the caller
//
// Finalize then fills in derived values and Validate rejects anything the
// viewer cannot run with.
//
// # Default Values
//
//   - Log file: ~/.codex/log/codex-tui.log
//   - Max items: 200
//   - Lines per item: 5 (12 when expanded)
//   - Char budget: 8192 characters per item
//   - Recent lines: 50
//   - ANSI escapes are stripped from recent lines
//   - Pretty mode: hybrid when pretty previews are on, summary otherwise
//
// # File Format
//
// The file is TOML, or YAML when its name ends in .yaml or .yml. Every key is
// optional:
//
//	file = "~/.codex/log/codex-tui.log"
//	from_start = false
//	max_items = 200
//	lines_per_item = 5
//	lines_expanded = 12
//	pretty_preview = true
//	pretty_mode = "hybrid"
//	keep_ansi = false
//	json_pretty = true
//	char_budget = 8192
//	recent_limit = 50
//	export_dir = "~/codexrays-exports"
//	debug_log = "/tmp/codexrays.log"
//
// A missing file is not an error. A file that fails to parse is reported as
// "parse config".
//
// # Environment
//
// Boolean variables accept 1, true, yes or on and only ever switch a feature
// on. XRAYS_PRETTY and XRAYS_PRETTY_PREVIEW are synonyms. XRAYS_PRETTY_MODE
// is ignored unless it names a known mode.
//
// # Path Expansion
//
// Paths from every layer get tilde expansion and are made absolute.
package config
