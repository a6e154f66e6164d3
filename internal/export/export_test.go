package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/codexrays/internal/state"
)

var exportTime = time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		key  state.Key
		want string
	}{
		{"plain", state.Key{ItemID: "msg_1", OutputIndex: 2}, "codexrays_export_msg_1_2_20250304_050607.txt"},
		{"sanitized", state.Key{ItemID: "a/b c:d"}, "codexrays_export_a_b_c_d_0_20250304_050607.txt"},
		{"keeps dots and dashes", state.Key{ItemID: "x.y-z"}, "codexrays_export_x.y-z_0_20250304_050607.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.key, exportTime); got != tt.want {
				t.Fatalf("FileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := Write(dir, state.Key{ItemID: "id"}, "hello\nworld", exportTime)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path = %q, want it under %q", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "hello\nworld" {
		t.Fatalf("content = %q, want %q", data, "hello\nworld")
	}
}

func TestWrite_FailureWrapped(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	_, err := Write(file, state.Key{ItemID: "id"}, "x", exportTime)
	if err == nil || !strings.Contains(err.Error(), "export") {
		t.Fatalf("Write err = %v, want wrapped export error", err)
	}
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestCopy_Native(t *testing.T) {
	var got string
	var term bytes.Buffer
	c := Copier{Native: func(s string) error { got = s; return nil }, Term: &term, Getenv: env(nil)}
	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if method != MethodNative || got != "hello" {
		t.Fatalf("method, text = %q, %q; want native hello", method, got)
	}
	if term.Len() != 0 {
		t.Fatalf("terminal got %q, want nothing", term.String())
	}
}

func TestCopy_FallsBackToOSC52(t *testing.T) {
	var term bytes.Buffer
	c := Copier{
		Native: func(string) error { return errors.New("no xclip") },
		Term:   &term,
		Getenv: env(map[string]string{"TERM": "xterm-256color"}),
	}
	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if method != MethodOSC52 {
		t.Fatalf("method = %q, want %q", method, MethodOSC52)
	}
	want := base64.StdEncoding.EncodeToString([]byte("hello"))
	if out := term.String(); !strings.HasPrefix(out, "\x1b]52;c;") || !strings.Contains(out, want) {
		t.Fatalf("sequence = %q, want OSC 52 carrying %q", out, want)
	}
}

func TestCopy_TmuxPassthrough(t *testing.T) {
	var term bytes.Buffer
	c := Copier{Term: &term, Getenv: env(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"})}
	if _, err := c.Copy("x"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !strings.HasPrefix(term.String(), "\x1bPtmux;") {
		t.Fatalf("sequence = %q, want tmux passthrough", term.String())
	}
}

func TestDefaultCopier_LeavesTerminalToCaller(t *testing.T) {
	c := DefaultCopier()
	if c.Term != nil {
		t.Fatalf("Term = %v, want nil so the program output is used", c.Term)
	}
	if c.Native == nil || c.Getenv == nil {
		t.Fatal("DefaultCopier should set Native and Getenv")
	}
}
