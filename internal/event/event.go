// Package event classifies raw log lines into streaming delta events,
// other structured events, function calls and opaque text.
package event

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Kind identifies how a line was classified.
type Kind int

const (
	// Opaque is free text, or a tagged line whose payload failed to parse.
	Opaque Kind = iota
	// Delta carries an incremental text fragment for an identified item.
	Delta
	// NonDelta is a structured event that does not extend an item.
	NonDelta
	// FunctionCall is a discrete function-call record.
	FunctionCall
)

func (k Kind) String() string {
	switch k {
	case Delta:
		return "delta"
	case NonDelta:
		return "event"
	case FunctionCall:
		return "function_call"
	default:
		return "opaque"
	}
}

const (
	// DeltaSuffix marks streaming event types.
	DeltaSuffix = ".delta"
	// ArgsSuffix marks streaming tool-call argument deltas.
	ArgsSuffix = "function_call_arguments.delta"
	// OutputSuffix marks streaming assistant output text deltas.
	OutputSuffix = "output_text.delta"

	otherType = "other"
)

var (
	sseRe          = regexp.MustCompile(`SSE event:\s*(\{.*\})\s*$`)
	functionCallRe = regexp.MustCompile(`FunctionCall:\s*(\{.*\})\s*$`)
	levelRe        = regexp.MustCompile(`\b(TRACE|DEBUG|INFO|WARN|ERROR|FATAL)\b`)
	isoTimestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z`)
)

var errTrailingData = errors.New("trailing data after JSON object")

// Event is one parsed log line.
type Event struct {
	Kind           Kind
	Type           string
	ItemID         string
	OutputIndex    *int
	SequenceNumber *int
	Delta          string
	Raw            map[string]any
	Line           string
}

// Parse classifies line. It never fails: payloads that do not decode yield an
// Opaque event carrying the original line.
func Parse(line string) Event {
	if payload, ok := StructuredPayload(line); ok {
		return fromStructured(line, payload)
	}
	if payload, ok := FunctionCallPayload(line); ok {
		return Event{Kind: FunctionCall, Raw: payload, Line: line}
	}
	return Event{Kind: Opaque, Line: line}
}

// StructuredPayload decodes the JSON object of a streaming-event line.
func StructuredPayload(line string) (map[string]any, bool) {
	return taggedObject(sseRe, line)
}

// FunctionCallPayload decodes the JSON object of a function-call line.
func FunctionCallPayload(line string) (map[string]any, bool) {
	return taggedObject(functionCallRe, line)
}

func taggedObject(re *regexp.Regexp, line string) (map[string]any, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	obj, err := decodeObject(m[1])
	if err != nil || len(obj) == 0 {
		return nil, false
	}
	return obj, true
}

func decodeObject(payload string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return obj, nil
}

func fromStructured(line string, payload map[string]any) Event {
	ev := Event{Kind: NonDelta, Raw: payload, Line: line}
	ev.Type = StringField(payload, "type")
	if ev.Type == "" {
		ev.Type = otherType
	}
	ev.ItemID = identity(payload)
	ev.OutputIndex = intField(payload, "output_index")
	ev.SequenceNumber = intField(payload, "sequence_number")
	if s, ok := payload["delta"].(string); ok {
		ev.Delta = s
	}
	if strings.HasSuffix(ev.Type, DeltaSuffix) && ev.ItemID != "" {
		ev.Kind = Delta
	}
	return ev
}

func identity(payload map[string]any) string {
	if id := StringField(payload, "item_id"); id != "" {
		return id
	}
	return StringField(payload, "id")
}

// StringField returns payload[key] as a string. Numbers are rendered in their
// JSON form; anything else yields "".
func StringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func intField(payload map[string]any, key string) *int {
	n, ok := payload[key].(json.Number)
	if !ok {
		return nil
	}
	i, err := n.Int64()
	if err != nil {
		return nil
	}
	v := int(i)
	return &v
}

// Level returns the first severity keyword in line, or INFO.
func Level(line string) string {
	if m := levelRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return "INFO"
}

// StripTimestamp removes a leading ISO-8601 UTC timestamp and the whitespace
// after it.
func StripTimestamp(line string) string {
	loc := isoTimestampRe.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return strings.TrimLeft(line[loc[1]:], " \t")
}

// StripANSI removes terminal escape sequences.
func StripANSI(line string) string {
	if !strings.ContainsRune(line, '\x1b') {
		return line
	}
	return ansi.Strip(line)
}
