package ui

import (
	"os"
	"sync"
)

// lockedOutput is the program's terminal. The renderer and clipboard
// commands both write escape sequences to it from different goroutines, so
// each Write is applied whole. The embedded file keeps Fd for size queries.
type lockedOutput struct {
	*os.File
	mu sync.Mutex
}

func newLockedOutput(f *os.File) *lockedOutput {
	return &lockedOutput{File: f}
}

func (o *lockedOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.Write(p)
}

func (o *lockedOutput) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}
