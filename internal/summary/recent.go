package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/five82/codexrays/internal/event"
)

// RecentOptions control how recent log lines are rendered.
type RecentOptions struct {
	// Pretty decodes structured and function-call lines into summaries.
	Pretty bool
	// StripANSI removes escape sequences before rendering.
	StripANSI bool
}

// RecentLine renders one line of the recent-activity panel at width cells.
func RecentLine(line string, width int, opts RecentOptions) Preview {
	if opts.StripANSI {
		line = event.StripANSI(line)
	}
	if opts.Pretty {
		if obj, ok := event.StructuredPayload(line); ok {
			return recentStructured(obj, width)
		}
		if obj, ok := event.FunctionCallPayload(line); ok {
			return recentFunctionCall(obj, width)
		}
	}
	return LevelLine(line, width)
}

// LevelLine renders a free-text log line as a severity badge and the line
// with its leading timestamp removed.
func LevelLine(line string, width int) Preview {
	lvl := strings.ToUpper(event.Level(line))
	clean := strings.TrimSpace(event.StripTimestamp(line))
	room := max(1, width-runeLen(lvl)-3)
	return Preview{Badge: lvl, Text: Ellipsize(clean, room), Style: levelStyle(lvl)}
}

// levelStyle maps a severity keyword to its badge style.
func levelStyle(level string) Style {
	switch strings.ToUpper(level) {
	case "ERROR", "FATAL":
		return StyleError
	case "WARN", "WARNING":
		return StyleWarn
	default:
		return StyleInfo
	}
}

func recentStructured(obj map[string]any, width int) Preview {
	typ := event.StringField(obj, "type")
	t := strings.ToLower(typ)
	style := StyleForType(t)

	var meta []string
	if id := event.StringField(obj, "item_id"); id != "" {
		meta = append(meta, ShortID(id, 10))
	}
	if n, ok := integral(obj["output_index"]); ok {
		meta = append(meta, fmt.Sprintf("#%d", n))
	}
	prefix := ""
	if len(meta) > 0 {
		prefix = strings.Join(meta, " ") + ": "
	}
	delta, _ := obj["delta"].(string)

	switch {
	case strings.HasSuffix(t, event.ArgsSuffix):
		parts := argParts(ExtractFields(delta), width, false)
		if len(parts) == 0 && delta != "" {
			parts = append(parts, Ellipsize(delta, max(8, width)))
		}
		body := "🧰 args " + ellipsis
		if len(parts) > 0 {
			body = strings.Join(parts, partSeparator)
		}
		return Preview{Text: Ellipsize(prefix+body, width), Style: style}

	case strings.HasSuffix(t, event.OutputSuffix):
		d := strings.TrimSpace(delta)
		if p, ok := SummarizePatch(d, width); ok {
			return Preview{Text: Ellipsize(strings.TrimSpace(prefix+p), width), Style: style}
		}
		body := "💬 " + ellipsis
		if d != "" {
			body = "💬 " + d
		}
		return Preview{Text: Ellipsize(prefix+body, width), Style: style}

	case strings.Contains(t, "error"):
		msg := firstNonEmpty(obj, "message", "error", "delta")
		if msg == "" {
			msg = "error"
		}
		return Preview{Text: Ellipsize(prefix+"❌ "+msg, width), Style: style}
	}

	if typ == "" {
		typ = "event"
	}
	s := prefix + "📡 " + typ
	if delta != "" {
		s += ": " + Ellipsize(delta, max(8, width/2))
	}
	return Preview{Text: Ellipsize(s, width), Style: style}
}

func recentFunctionCall(obj map[string]any, width int) Preview {
	var cmd string
	switch v := obj["command"].(type) {
	case []any:
		toks := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				toks = append(toks, s)
			}
		}
		cmd = strings.Join(toks, " ")
	case string:
		cmd = v
	case nil:
		cmd = ""
	default:
		if b, err := json.Marshal(v); err == nil {
			cmd = string(b)
		}
	}
	if p, ok := SummarizePatch(cmd, width); ok {
		return Preview{Text: Ellipsize(p, width), Style: StyleTool}
	}
	return Preview{Text: Ellipsize("🛠️ call: "+Ellipsize(cmd, max(8, width)), width), Style: StyleTool}
}

// firstNonEmpty returns the first of keys whose value is a non-empty string,
// or the compact JSON of a non-string value.
func firstNonEmpty(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case nil:
		case string:
			if v != "" {
				return v
			}
		default:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
	}
	return ""
}

func integral(v any) (int, bool) {
	switch n := v.(type) {
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
