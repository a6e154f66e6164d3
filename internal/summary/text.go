package summary

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// Ellipsize collapses whitespace runs to single spaces and, when the result
// is longer than limit characters, keeps the first limit-1 characters followed
// by an ellipsis.
func Ellipsize(s string, limit int) string {
	if limit <= 1 {
		if s == "" {
			return ""
		}
		return ellipsis
	}
	collapsed := collapse(s)
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit-1]) + ellipsis
}

// TailEllipsize is Ellipsize keeping the end of the text instead of the start.
func TailEllipsize(s string, limit int) string {
	if limit <= 1 {
		if s == "" {
			return ""
		}
		return ellipsis
	}
	collapsed := collapse(s)
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return ellipsis + string(runes[len(runes)-(limit-1):])
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Wrap hard-wraps text at width terminal cells. Carriage returns are dropped
// and every newline starts a new line; an empty segment yields an empty line.
func Wrap(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r", "")
	if width <= 0 {
		return []string{text}
	}
	var out []string
	for _, segment := range strings.Split(text, "\n") {
		if ansi.StringWidth(segment) <= width {
			out = append(out, segment)
			continue
		}
		out = append(out, strings.Split(ansi.Hardwrap(segment, width, true), "\n")...)
	}
	return out
}

// WrapTail returns the last limit lines of Wrap(text, width). It wraps from
// the end and stops once enough lines are collected, so long texts with many
// newlines cost only their tail. A limit of zero or less wraps everything.
func WrapTail(text string, width, limit int) []string {
	if limit <= 0 {
		return Wrap(text, width)
	}
	var chunks [][]string
	n := 0
	for n < limit {
		i := strings.LastIndexByte(text, '\n')
		lines := Wrap(text[i+1:], width)
		chunks = append(chunks, lines)
		n += len(lines)
		if i < 0 {
			break
		}
		text = text[:i]
	}
	out := make([]string, 0, n)
	for j := len(chunks) - 1; j >= 0; j-- {
		out = append(out, chunks[j]...)
	}
	return lastLines(out, limit)
}

// ShortID returns id, or its first keep characters plus an ellipsis when
// longer. An empty id renders as "<no-id>".
func ShortID(id string, keep int) string {
	if id == "" {
		return "<no-id>"
	}
	runes := []rune(id)
	if len(runes) <= keep {
		return id
	}
	return string(runes[:keep]) + ellipsis
}

func basename(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func runeLen(s string) int {
	return len([]rune(s))
}
