package export

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// osc52Limit caps the escape sequence size; many terminals drop larger ones.
const osc52Limit = 100 * 1024

// Method names how text reached the clipboard.
type Method string

const (
	MethodNative Method = "clipboard"
	MethodOSC52  Method = "osc52"
)

// Copier copies text to the system clipboard, falling back to an OSC 52
// escape sequence written to the terminal when no native clipboard tool is
// available (for example over SSH).
type Copier struct {
	Native func(string) error
	Term   io.Writer
	Getenv func(string) string
}

// DefaultCopier uses the native clipboard. Term is left nil so the caller
// can hand it the writer that owns the terminal; nil falls back to stdout.
func DefaultCopier() Copier {
	return Copier{Native: clipboard.WriteAll, Getenv: os.Getenv}
}

// Copy copies text and reports which method was used.
func (c Copier) Copy(text string) (Method, error) {
	if c.Native != nil {
		if err := c.Native(text); err == nil {
			return MethodNative, nil
		}
	}
	if err := c.writeOSC52(text); err != nil {
		return "", err
	}
	return MethodOSC52, nil
}

func (c Copier) writeOSC52(text string) error {
	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	w := c.Term
	if w == nil {
		w = os.Stdout
	}
	seq := osc52.New(text).Limit(osc52Limit)
	term := strings.ToLower(getenv("TERM"))
	if getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") {
		seq = seq.Tmux()
	} else if strings.HasPrefix(term, "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}
