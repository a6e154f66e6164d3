// Package logtail follows a growing log file without blocking.
//
// # Overview
//
// A Tailer remembers a file handle, the inode it was opened against and the
// byte offset consumed so far. Every Poll:
//
//  1. Opens the file if no handle is held (missing files are retried later
//     with an exponential backoff capped at one second)
//  2. Stats the path and reopens when the inode changed (rotation) or the
//     size dropped below the read offset (truncation)
//  3. Reads everything available and returns the complete lines
//
// Lines are returned without their "\n" or "\r\n" terminator. A trailing
// fragment with no newline yet is held back until the rest arrives, and is
// discarded when the file is rotated or truncated underneath it.
//
// # Start Mode
//
// A tailer created with fromStart=false seeks to the end of the file on every
// open, so only lines written after startup are reported. ToggleFromStart
// flips the mode and drops the handle; the next Poll reopens the file and, in
// from-start mode, replays it from offset zero.
//
// # Encoding
//
// Bytes that are not valid UTF-8 are replaced with U+FFFD. Decoding never
// fails a poll.
//
// Example usage:
//
//	t := logtail.New("~/.codex/log/codex-tui.log", false)
//	for range ticker.C {
//		lines, err := t.Poll()
//		if err != nil {
//			log.Printf("tail: %v", err)
//		}
//		for _, ln := range lines {
//			handle(ln)
//		}
//	}
package logtail
