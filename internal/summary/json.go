package summary

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PrettyJSON indents text when it is a single valid JSON object or array.
// Key order and number formatting are preserved. ok is false for anything
// else, including text that is merely JSON-like.
func PrettyJSON(text string) (lines []string, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return nil, false
	}
	return strings.Split(buf.String(), "\n"), true
}

// SegmentKind classifies part of a pretty-printed JSON line.
type SegmentKind int

const (
	SegPlain SegmentKind = iota
	SegKey
	SegString
	SegNumber
	SegLiteral
)

// Segment is a run of text sharing one highlight.
type Segment struct {
	Text string
	Kind SegmentKind
}

var (
	jsonKeyLineRe = regexp.MustCompile(`^(\s*)("(?:[^"\\]*(?:\\.[^"\\]*)*)")\s*:(\s*)(.*)$`)
	numberStartRe = regexp.MustCompile(`^-?\d`)
)

// JSONSegments splits one pretty-printed JSON line into highlight runs: the
// indent, the key, the colon and the value.
func JSONSegments(line string) []Segment {
	m := jsonKeyLineRe.FindStringSubmatch(line)
	if m == nil {
		return []Segment{{Text: line, Kind: valueKind(line)}}
	}
	indent, key, gap, rest := m[1], m[2], m[3], m[4]
	segs := make([]Segment, 0, 4)
	if indent != "" {
		segs = append(segs, Segment{Text: indent, Kind: SegPlain})
	}
	segs = append(segs,
		Segment{Text: key, Kind: SegKey},
		Segment{Text: ":" + gap, Kind: SegPlain},
	)
	if rest != "" {
		segs = append(segs, Segment{Text: rest, Kind: valueKind(rest)})
	}
	return segs
}

func valueKind(s string) SegmentKind {
	v := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(v, `"`):
		return SegString
	case numberStartRe.MatchString(v):
		return SegNumber
	case strings.HasPrefix(v, "true"), strings.HasPrefix(v, "false"), strings.HasPrefix(v, "null"):
		return SegLiteral
	default:
		return SegPlain
	}
}

// WrapIndented word-wraps pretty JSON lines to width cells, indenting
// continuation lines to match the line they came from. Words longer than the
// available width are left whole.
func WrapIndented(lines []string, width int) []string {
	width = max(1, width)
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			out = append(out, ln)
			continue
		}
		body := strings.TrimLeft(ln, " ")
		indent := ln[:len(ln)-len(body)]
		if width-len(indent) < 8 {
			indent, body = "", ln
		}
		for _, part := range strings.Split(ansi.Wordwrap(body, width-len(indent), ""), "\n") {
			out = append(out, indent+part)
		}
	}
	return out
}
