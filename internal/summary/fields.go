package summary

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// extractWindow is how much of the accumulated text field extraction looks
// at. Arguments stream left to right, so the tail holds the latest fields.
const extractWindow = 2000

const maxFallbackKeys = 6

// Fields are the values pulled out of partial tool-call arguments. Empty
// strings and nil pointers mean "not found".
type Fields struct {
	ToolName      string
	Query         string
	URL           string
	Path          string
	Command       string
	Escalated     *bool
	TimeoutMS     *int
	Justification string
	// Keys lists the top-level keys of a fully parsed object, filled only
	// when none of the fields above matched.
	Keys []string
}

// Empty reports whether nothing at all was extracted.
func (f Fields) Empty() bool {
	return f.ToolName == "" && f.Query == "" && f.URL == "" && f.Path == "" &&
		f.Command == "" && f.Escalated == nil && f.TimeoutMS == nil &&
		f.Justification == "" && len(f.Keys) == 0
}

type fieldPattern struct {
	keys  []string
	value string
}

var (
	toolPattern  = fieldPattern{[]string{"name", "tool", "tool_name", "function", "action"}, `"([^"]+)"`}
	queryPattern = fieldPattern{[]string{"query", "q", "text", "prompt", "input"}, `"(.+?)"`}
	urlPattern   = fieldPattern{[]string{"url", "uri"}, `"(https?://[^"\s]+)"`}
	pathPattern  = fieldPattern{[]string{"file", "path", "filepath", "filename"}, `"([^"\n]+)"`}
	cmdPattern   = fieldPattern{[]string{"command", "cmd", "shell"}, `"([^"\n]+)"`}

	toolRes  = toolPattern.compile()
	queryRes = queryPattern.compile()
	urlRes   = urlPattern.compile()
	pathRes  = pathPattern.compile()
	cmdRes   = cmdPattern.compile()

	cmdArrayRe      = regexp.MustCompile(`(?s)"command"\s*:\s*\[(.*?)\]`)
	quotedTokenRe   = regexp.MustCompile(`"([^"\\]*(?:\\.[^"\\]*)*)"`)
	escalatedRe     = regexp.MustCompile(`(?i)"with_escalated_permissions"\s*:\s*(true|false)`)
	timeoutRe       = regexp.MustCompile(`"timeout_ms"\s*:\s*(\d+)`)
	justificationRe = regexp.MustCompile(`"justification"\s*:\s*"(.+?)"`)
)

func (p fieldPattern) compile() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(p.keys))
	for i, k := range p.keys {
		out[i] = regexp.MustCompile(`"` + regexp.QuoteMeta(k) + `"\s*:\s*` + p.value)
	}
	return out
}

// firstMatch returns the capture of the first pattern (in priority order)
// that matches src.
func firstMatch(res []*regexp.Regexp, src string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(src); m != nil && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// ExtractFields pulls tool-call fields out of possibly incomplete JSON. It
// only looks at the last 2000 characters of text and never fails.
func ExtractFields(text string) Fields {
	src := strings.TrimSpace(tail(text, extractWindow))

	var f Fields
	f.ToolName = firstMatch(toolRes, src)
	f.Query = firstMatch(queryRes, src)
	f.URL = firstMatch(urlRes, src)
	f.Path = firstMatch(pathRes, src)
	f.Command = firstMatch(cmdRes, src)
	if f.Command == "" {
		f.Command = commandArray(src)
	}
	if m := escalatedRe.FindStringSubmatch(src); m != nil {
		v := strings.EqualFold(m[1], "true")
		f.Escalated = &v
	}
	if m := timeoutRe.FindStringSubmatch(src); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			f.TimeoutMS = &v
		}
	}
	if m := justificationRe.FindStringSubmatch(src); m != nil {
		f.Justification = m[1]
	}

	if f.Empty() {
		if keys, err := objectKeys(src); err == nil && len(keys) > 0 {
			if len(keys) > maxFallbackKeys {
				keys = keys[:maxFallbackKeys]
			}
			f.Keys = keys
		}
	}
	return f
}

// commandArray joins the quoted tokens of a "command": [...] array.
func commandArray(src string) string {
	m := cmdArrayRe.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	toks := quotedTokenRe.FindAllStringSubmatch(m[1], -1)
	if len(toks) == 0 {
		return ""
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = strings.ReplaceAll(t[1], `\"`, `"`)
	}
	return strings.Join(parts, " ")
}

var errNotObject = errors.New("not a JSON object")

// objectKeys strictly decodes src as a single JSON object and returns its
// top-level keys in document order.
func objectKeys(src string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var keys []string
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errNotObject
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errNotObject
	}
	return keys, nil
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
