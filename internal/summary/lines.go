package summary

import (
	"strings"

	"github.com/five82/codexrays/internal/state"
)

// Mode selects how pretty previews fill an item's lines.
type Mode string

const (
	// ModeSummary shows only the wrapped summary.
	ModeSummary Mode = "summary"
	// ModeHybrid follows the summary with a live tail of the raw text.
	ModeHybrid Mode = "hybrid"
)

// ParseMode returns the mode named by s.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSummary:
		return ModeSummary, true
	case ModeHybrid:
		return ModeHybrid, true
	default:
		return "", false
	}
}

// PreviewLines renders an item as at most limit pretty lines of width cells.
func PreviewLines(it *state.Item, width, limit int, mode Mode) ([]string, Style) {
	p := Summarize(it, width)
	return hybridLines(p.Text, it.Snapshot(), width, limit, mode), p.Style
}

// hybridLines wraps summary and, in hybrid mode, fills the remaining lines
// with the end of raw, skipping as many characters as the summary already
// showed so the first tail line does not repeat it.
func hybridLines(summary, raw string, width, limit int, mode Mode) []string {
	width = max(1, width)
	lines := Wrap(summary, width)
	if mode != ModeHybrid || limit <= len(lines) {
		return lines[:min(len(lines), max(1, limit))]
	}
	remain := limit - len(lines)

	flat := []rune(strings.NewReplacer("\r", "", "\n", " ").Replace(raw))
	shown := 0
	for _, ln := range lines {
		shown += runeLen(ln)
	}
	after := ""
	if shown < len(flat) {
		after = string(flat[shown:])
	}
	tailLines := Wrap(TailEllipsize(after, width*remain), width)
	if len(tailLines) > remain {
		tailLines = tailLines[len(tailLines)-remain:]
	}
	return append(lines, tailLines...)
}

// PlainLines hard-wraps the item text and keeps the last limit lines.
func PlainLines(it *state.Item, width, limit int) []string {
	return WrapTail(it.Snapshot(), max(1, width), limit)
}

func lastLines(lines []string, limit int) []string {
	if limit > 0 && len(lines) > limit {
		return lines[len(lines)-limit:]
	}
	return lines
}
