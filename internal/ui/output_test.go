package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLockedOutput_WritesAreWhole(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	out := newLockedOutput(f)

	const chunk = 4096
	var wg sync.WaitGroup
	for _, c := range []byte("abcdefgh") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 8 {
				if _, err := out.Write(bytes.Repeat([]byte{c}, chunk)); err != nil {
					t.Errorf("Write: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 8*8*chunk {
		t.Fatalf("wrote %d bytes, want %d", len(data), 8*8*chunk)
	}
	for i := 0; i < len(data); i += chunk {
		block := data[i : i+chunk]
		if n := bytes.Count(block, block[:1]); n != chunk {
			t.Fatalf("block at %d is mixed: %d of %d bytes are %q", i, n, chunk, block[:1])
		}
	}
	if out.Fd() != f.Fd() {
		t.Fatalf("Fd() = %d, want the wrapped file's %d", out.Fd(), f.Fd())
	}
}
