package logtail

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
}

func mustPoll(t *testing.T, tail *Tailer) []string {
	t.Helper()
	lines, err := tail.Poll()
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	return lines
}

func TestPoll_FromStartReadsExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "one\ntwo\r\nthree\n")

	tail := New(path, true)
	defer tail.Close()

	got := mustPoll(t, tail)
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Poll() = %q, want %q", got, want)
	}
	if got := mustPoll(t, tail); len(got) != 0 {
		t.Fatalf("second Poll() = %q, want nothing", got)
	}
}

func TestPoll_TailModeSkipsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "old 1\nold 2\n")

	tail := New(path, false)
	defer tail.Close()

	if got := mustPoll(t, tail); len(got) != 0 {
		t.Fatalf("Poll() = %q, want nothing before new writes", got)
	}
	appendFile(t, path, "new 1\n")
	got := mustPoll(t, tail)
	if !reflect.DeepEqual(got, []string{"new 1"}) {
		t.Fatalf("Poll() = %q, want [new 1]", got)
	}
}

func TestPoll_HoldsPartialLineUntilNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "")

	tail := New(path, true)
	defer tail.Close()
	mustPoll(t, tail)

	appendFile(t, path, "hel")
	if got := mustPoll(t, tail); len(got) != 0 {
		t.Fatalf("Poll() = %q, want partial line held back", got)
	}
	appendFile(t, path, "lo\nwor")
	if got := mustPoll(t, tail); !reflect.DeepEqual(got, []string{"hello"}) {
		t.Fatalf("Poll() = %q, want [hello]", got)
	}
	appendFile(t, path, "ld\n")
	if got := mustPoll(t, tail); !reflect.DeepEqual(got, []string{"world"}) {
		t.Fatalf("Poll() = %q, want [world]", got)
	}
}

func TestPoll_TruncationReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "a long first line\nanother line\n")

	tail := New(path, true)
	defer tail.Close()
	if got := mustPoll(t, tail); len(got) != 2 {
		t.Fatalf("Poll() = %q, want 2 lines", got)
	}

	writeFile(t, path, "x\n")
	got := mustPoll(t, tail)
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("Poll() after truncate = %q, want [x]", got)
	}
	if tail.Reopens() != 1 {
		t.Fatalf("Reopens() = %d, want 1", tail.Reopens())
	}
}

func TestPoll_RotationReopens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	writeFile(t, path, "before\n")

	tail := New(path, true)
	defer tail.Close()
	if got := mustPoll(t, tail); !reflect.DeepEqual(got, []string{"before"}) {
		t.Fatalf("Poll() = %q, want [before]", got)
	}

	if err := os.Rename(path, filepath.Join(dir, "test.log.1")); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	writeFile(t, path, "after rotation\n")

	got := mustPoll(t, tail)
	if !reflect.DeepEqual(got, []string{"after rotation"}) {
		t.Fatalf("Poll() after rotation = %q, want [after rotation]", got)
	}
}

func TestPoll_TailModeReopenSeeksToEnd(t *testing.T) {
	tests := []struct {
		name   string
		replay func(t *testing.T, path string)
	}{
		{
			name: "truncate",
			replay: func(t *testing.T, path string) {
				writeFile(t, path, "x\n")
			},
		},
		{
			name: "rotate",
			replay: func(t *testing.T, path string) {
				if err := os.Rename(path, path+".1"); err != nil {
					t.Fatalf("Rename: %v", err)
				}
				writeFile(t, path, "already there\n")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.log")
			writeFile(t, path, "old line one\nold line two\n")

			tail := New(path, false)
			defer tail.Close()
			if got := mustPoll(t, tail); len(got) != 0 {
				t.Fatalf("Poll() = %q, want nothing in tail mode", got)
			}
			appendFile(t, path, "held")
			if got := mustPoll(t, tail); len(got) != 0 {
				t.Fatalf("Poll() = %q, want partial line held back", got)
			}

			tt.replay(t, path)
			if got := mustPoll(t, tail); len(got) != 0 {
				t.Fatalf("Poll() after reopen = %q, want nothing before new appends", got)
			}
			if tail.Reopens() != 1 {
				t.Fatalf("Reopens() = %d, want 1", tail.Reopens())
			}

			appendFile(t, path, "next\n")
			if got := mustPoll(t, tail); !reflect.DeepEqual(got, []string{"next"}) {
				t.Fatalf("Poll() = %q, want [next] without the dropped partial", got)
			}
		})
	}
}

func TestPoll_MissingFileIsSoftAndRetried(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.log")
	now := time.Unix(1_700_000_000, 0)

	tail := New(path, true)
	tail.now = func() time.Time { return now }
	defer tail.Close()

	if got := mustPoll(t, tail); got != nil {
		t.Fatalf("Poll() = %q, want nil for missing file", got)
	}

	writeFile(t, path, "appeared\n")
	if got := mustPoll(t, tail); got != nil {
		t.Fatalf("Poll() inside backoff window = %q, want nil", got)
	}

	now = now.Add(maxOpenBackoff)
	got := mustPoll(t, tail)
	if !reflect.DeepEqual(got, []string{"appeared"}) {
		t.Fatalf("Poll() after backoff = %q, want [appeared]", got)
	}
}

func TestToggleFromStart_ReplaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "one\ntwo\n")

	tail := New(path, false)
	defer tail.Close()
	mustPoll(t, tail)

	if !tail.ToggleFromStart() {
		t.Fatalf("ToggleFromStart() = false, want true")
	}
	got := mustPoll(t, tail)
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("Poll() after toggle = %q, want [one two]", got)
	}
}

func TestPoll_ReplacesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	writeFile(t, path, "ok \xff\xfe end\n")

	tail := New(path, true)
	defer tail.Close()

	got := mustPoll(t, tail)
	if len(got) != 1 || got[0] != "ok � end" {
		t.Fatalf("Poll() = %q, want replacement character", got)
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 20 * time.Millisecond

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 20 * time.Millisecond},
		{"negative failures", -1, 20 * time.Millisecond},
		{"one failure", 1, 40 * time.Millisecond},
		{"two failures", 2, 80 * time.Millisecond},
		{"five failures", 5, 640 * time.Millisecond},
		{"six failures capped", 6, time.Second}, // would be 1.28s
		{"many failures capped", 40, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}
