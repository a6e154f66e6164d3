// Package app is the composition root of the CodeXRays viewer.
//
// # Overview
//
// Run wires the log tailer, the ingest pipeline, the item store and the
// list state into the Bubble Tea UI, then blocks until the user quits or the
// context is cancelled.
//
// # Startup
//
//  1. Fail with ErrLogNotFound if the log file does not exist
//  2. Route the standard logger to the debug log, or discard it
//  3. Load preferences (theme, JSON wrap), falling back to defaults
//  4. Open the tailer at the start or the end of the file
//  5. Build the store, list state and pipeline from the config limits
//  6. Run the UI
//
// # Logging
//
// The UI owns the terminal, so nothing is logged to stderr while it runs.
// Setting a debug log (--debug-log or XRAYS_DEBUG_LOG) captures tailer
// reopens, export results and preference save failures.
package app
