package summary

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/five82/codexrays/internal/event"
	"github.com/five82/codexrays/internal/state"
)

// Style tags a preview with the palette role it should be drawn in.
type Style int

const (
	StyleDefault Style = iota
	StyleArgs
	StyleOutput
	StyleTool
	StyleInfo
	StyleWarn
	StyleError
)

func (s Style) String() string {
	switch s {
	case StyleArgs:
		return "args"
	case StyleOutput:
		return "output"
	case StyleTool:
		return "tool"
	case StyleInfo:
		return "info"
	case StyleWarn:
		return "warn"
	case StyleError:
		return "error"
	default:
		return "default"
	}
}

// Preview is a one-line rendering of an item or log line.
type Preview struct {
	// Badge is a severity label drawn before Text, used for plain log lines.
	Badge string
	Text  string
	Style Style
}

// String renders the preview without colour.
func (p Preview) String() string {
	if p.Badge == "" {
		return p.Text
	}
	return "[" + p.Badge + "] " + p.Text
}

// StyleForType maps an event type label to its palette role.
func StyleForType(label string) Style {
	switch {
	case strings.HasSuffix(label, event.ArgsSuffix):
		return StyleArgs
	case strings.HasSuffix(label, event.OutputSuffix):
		return StyleOutput
	case strings.Contains(label, ".tool"), strings.Contains(label, ".function_call"):
		return StyleTool
	case strings.Contains(strings.ToLower(label), "error"):
		return StyleError
	default:
		return StyleDefault
	}
}

const partSeparator = "  ·  "

var (
	errorWordsRe = regexp.MustCompile(`(?i)\b(error|exception|traceback|failed)\b`)
	warnWordsRe  = regexp.MustCompile(`(?i)\b(warn|deprecate)\w*\b`)
	bareURLRe    = regexp.MustCompile(`https?://[^\s]+`)
)

// Summarize renders the preview of an item at the given width.
func Summarize(it *state.Item, width int) Preview {
	return SummarizeText(it.TypeLabel(), it.Snapshot(), width)
}

// SummarizeText renders the preview of raw text streamed under label.
func SummarizeText(label, raw string, width int) Preview {
	label = strings.ToLower(label)
	s := strings.TrimSpace(raw)
	style := StyleForType(label)

	if strings.HasSuffix(label, event.ArgsSuffix) || strings.HasPrefix(s, "{") {
		if parts := argParts(ExtractFields(s), width, true); len(parts) > 0 {
			return Preview{Text: Ellipsize(strings.Join(parts, partSeparator), width), Style: StyleArgs}
		}
	}
	if strings.HasPrefix(s, "```") {
		return Preview{Text: Ellipsize("🧩 code block", width), Style: StyleInfo}
	}
	if errorWordsRe.MatchString(s) {
		return Preview{Text: Ellipsize("❌ "+s, width), Style: StyleError}
	}
	if warnWordsRe.MatchString(s) {
		return Preview{Text: Ellipsize("⚠️ "+s, width), Style: StyleInfo}
	}
	if link := bareURLRe.FindString(s); link != "" {
		host := link
		if u, err := url.Parse(link); err == nil {
			host = u.Host
		}
		return Preview{Text: Ellipsize(fmt.Sprintf("🔗 %s — %s", host, s), width), Style: StyleInfo}
	}
	if strings.HasSuffix(label, event.OutputSuffix) {
		if p, ok := SummarizePatch(s, width); ok {
			return Preview{Text: Ellipsize(p, width), Style: StyleArgs}
		}
		return Preview{Text: Ellipsize("💬 "+s, width), Style: StyleOutput}
	}
	return Preview{Text: Ellipsize(s, width), Style: style}
}

// argParts renders extracted fields as tagged fragments. The compact form,
// used for single log lines, omits the permission, timeout and justification
// tags and gives the command less room.
func argParts(f Fields, width int, full bool) []string {
	var parts []string
	if f.ToolName != "" {
		parts = append(parts, "🧰 "+f.ToolName)
	}
	if f.Query != "" {
		parts = append(parts, "🔎 "+Ellipsize(f.Query, max(8, width/2)))
	}
	if f.URL != "" {
		parts = append(parts, "🔗 "+Ellipsize(urlHost(f.URL), max(8, width/3)))
	}
	if f.Path != "" {
		parts = append(parts, "📄 "+Ellipsize(basename(f.Path), max(8, width/3)))
	}
	if f.Command != "" {
		if p, ok := SummarizePatch(f.Command, width); ok {
			parts = append(parts, p)
		} else if full {
			parts = append(parts, "🛠️ "+Ellipsize(f.Command, max(12, width/2)))
		} else {
			parts = append(parts, "🛠️ "+Ellipsize(f.Command, max(8, width/3)))
		}
	}
	if !full {
		return parts
	}
	if f.Escalated != nil && *f.Escalated {
		parts = append(parts, "🛡️ root")
	}
	if f.TimeoutMS != nil && *f.TimeoutMS != 0 {
		parts = append(parts, fmt.Sprintf("⏱️ %ds", *f.TimeoutMS/1000))
	}
	if f.Justification != "" {
		parts = append(parts, "✍️ "+Ellipsize(f.Justification, max(10, width/2)))
	}
	if len(parts) == 0 && len(f.Keys) > 0 {
		parts = append(parts, "🧰 args:"+strings.Join(f.Keys, ","))
	}
	return parts
}

func urlHost(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
