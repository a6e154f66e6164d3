package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const (
	readChunk      = 64 * 1024
	baseOpenRetry  = 20 * time.Millisecond
	maxOpenBackoff = time.Second
)

// Tailer follows a single log file across appends, truncation and rotation.
// It never blocks: each Poll returns whatever complete lines arrived since the
// previous call.
type Tailer struct {
	path      string
	fromStart bool

	file    *os.File
	inode   uint64
	pos     int64
	partial []byte

	failures  int
	nextOpen  time.Time
	reopens   int
	lastError error

	now func() time.Time
}

// New returns a tailer for path. When fromStart is false the first open
// seeks to the end of the file so only new lines are reported.
func New(path string, fromStart bool) *Tailer {
	return &Tailer{path: path, fromStart: fromStart, now: time.Now}
}

// Path returns the file being tailed.
func (t *Tailer) Path() string { return t.path }

// FromStart reports the current start mode.
func (t *Tailer) FromStart() bool { return t.fromStart }

// Reopens counts how many times rotation or truncation forced a reopen.
func (t *Tailer) Reopens() int { return t.reopens }

// Open acquires the file handle. It is safe to call repeatedly; an existing
// handle is closed first.
func (t *Tailer) Open() error {
	t.closeFile()
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log: %w", err)
	}
	pos := int64(0)
	if !t.fromStart {
		pos = info.Size()
	}
	if _, err := f.Seek(pos, io.SeekStart); err != nil {
		_ = f.Close()
		return fmt.Errorf("seek log: %w", err)
	}
	t.file = f
	t.inode = inodeOf(info)
	t.pos = pos
	t.partial = t.partial[:0]
	t.failures = 0
	return nil
}

// ToggleFromStart flips the start mode and drops the handle so the next poll
// reopens the file under the new mode.
func (t *Tailer) ToggleFromStart() bool {
	t.fromStart = !t.fromStart
	t.Reset()
	return t.fromStart
}

// Reset drops the current handle and any buffered partial line.
func (t *Tailer) Reset() {
	t.closeFile()
	t.partial = t.partial[:0]
	t.failures = 0
	t.nextOpen = time.Time{}
}

// Close releases the file handle.
func (t *Tailer) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}

// Poll returns the complete lines appended since the last call, without
// their line terminators. A missing file is not an error: the tailer retries
// the open on a later poll.
func (t *Tailer) Poll() ([]string, error) {
	if t.file == nil {
		if t.now().Before(t.nextOpen) {
			return nil, nil
		}
		if err := t.Open(); err != nil {
			t.failures++
			t.nextOpen = t.now().Add(calculateBackoff(t.failures, baseOpenRetry))
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil
			}
			t.noteError(err)
			return nil, err
		}
	}

	if err := t.reopenIfRotated(); err != nil {
		return nil, err
	}
	if t.file == nil {
		return nil, nil
	}

	lines, err := t.drain()
	if err != nil {
		t.noteError(err)
		return lines, err
	}
	t.lastError = nil
	return lines, nil
}

func (t *Tailer) reopenIfRotated() error {
	info, err := os.Stat(t.path)
	if err != nil {
		// Removed mid-rotation; keep draining the old handle until the
		// replacement appears.
		return nil
	}
	if inodeOf(info) == t.inode && info.Size() >= t.pos {
		return nil
	}
	t.reopens++
	log.Printf("log %s rotated or truncated (size %d, read %d); reopen #%d", t.path, info.Size(), t.pos, t.reopens)
	if err := t.Open(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		t.noteError(err)
		return err
	}
	return nil
}

func (t *Tailer) drain() ([]string, error) {
	var lines []string
	buf := make([]byte, readChunk)
	for {
		n, err := t.file.Read(buf)
		if n > 0 {
			t.pos += int64(n)
			lines = t.split(buf[:n], lines)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, fmt.Errorf("read log: %w", err)
		}
		if n == 0 {
			return lines, nil
		}
	}
}

// split appends the complete lines in chunk (prefixed by any held partial
// line) to lines and keeps the unterminated remainder for the next read.
func (t *Tailer) split(chunk []byte, lines []string) []string {
	for len(chunk) > 0 {
		idx := bytes.IndexByte(chunk, '\n')
		if idx < 0 {
			t.partial = append(t.partial, chunk...)
			return lines
		}
		line := chunk[:idx]
		if len(t.partial) > 0 {
			t.partial = append(t.partial, line...)
			line = t.partial
		}
		lines = append(lines, decodeLine(line))
		t.partial = t.partial[:0]
		chunk = chunk[idx+1:]
	}
	return lines
}

func decodeLine(raw []byte) string {
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}

func (t *Tailer) closeFile() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
}

// noteError logs an error once per distinct message so a persistent failure
// does not flood the debug log at the poll cadence.
func (t *Tailer) noteError(err error) {
	if t.lastError != nil && t.lastError.Error() == err.Error() {
		return
	}
	t.lastError = err
	log.Printf("tail %s: %v", t.path, err)
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxOpenBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxOpenBackoff {
			return maxOpenBackoff
		}
	}
	return backoff
}
