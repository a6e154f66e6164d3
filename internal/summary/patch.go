package summary

import (
	"fmt"
	"strings"
)

const (
	patchBegin  = "*** Begin Patch"
	patchEnd    = "*** End Patch"
	patchAdd    = "*** Add File: "
	patchUpdate = "*** Update File: "
	patchDelete = "*** Delete File: "

	maxPatchFiles = 3
)

// PatchFile is one file touched by a patch envelope.
type PatchFile struct {
	Mark string
	Name string
}

// PatchStat is the diffstat of a patch envelope.
type PatchStat struct {
	Add, Update, Delete int
	Plus, Minus         int
	Files               []PatchFile
	// Partial is set when the end marker has not arrived yet.
	Partial bool
}

// HasPatch reports whether text looks like it carries a patch envelope.
func HasPatch(text string) bool {
	return strings.Contains(text, "apply_patch") || strings.Contains(text, patchBegin)
}

// ParsePatch scans the envelope in text. Text that escapes its newlines as
// "\n" (with no literal newline present) is unescaped first. A missing end
// marker yields a partial stat covering everything after the begin marker.
func ParsePatch(text string) (PatchStat, bool) {
	if !HasPatch(text) {
		return PatchStat{}, false
	}
	cand := text
	if strings.Contains(cand, `\n`) && !strings.Contains(cand, "\n") {
		cand = strings.NewReplacer(`\r`, "", `\n`, "\n", `\"`, `"`).Replace(cand)
	}
	start := strings.Index(cand, patchBegin)
	if start < 0 {
		return PatchStat{}, false
	}
	var st PatchStat
	body := cand[start+len(patchBegin):]
	if end := strings.Index(body, patchEnd); end >= 0 {
		body = body[:end]
	} else {
		st.Partial = true
	}

	for _, ln := range strings.Split(strings.ReplaceAll(body, "\r", ""), "\n") {
		switch {
		case strings.HasPrefix(ln, patchAdd):
			st.Add++
			st.Files = append(st.Files, PatchFile{Mark: "+", Name: patchPath(ln)})
		case strings.HasPrefix(ln, patchUpdate):
			st.Update++
			st.Files = append(st.Files, PatchFile{Mark: "✏️", Name: patchPath(ln)})
		case strings.HasPrefix(ln, patchDelete):
			st.Delete++
			st.Files = append(st.Files, PatchFile{Mark: "🗑️", Name: patchPath(ln)})
		case strings.HasPrefix(ln, "+"):
			st.Plus++
		case strings.HasPrefix(ln, "-"):
			st.Minus++
		}
	}
	return st, true
}

func patchPath(line string) string {
	_, p, _ := strings.Cut(line, ":")
	return basename(strings.TrimSpace(p))
}

// Summary renders the diffstat on one line, listing up to three files.
func (st PatchStat) Summary(width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧩 patch: %d➕ %d✏️ %d🗑️ · +%d −%d", st.Add, st.Update, st.Delete, st.Plus, st.Minus)
	if len(st.Files) > 0 {
		shown := st.Files
		if len(shown) > maxPatchFiles {
			shown = shown[:maxPatchFiles]
		}
		names := make([]string, len(shown))
		for i, f := range shown {
			names[i] = f.Mark + " " + f.Name
		}
		list := strings.Join(names, " ")
		if len(st.Files) > maxPatchFiles {
			list += " " + ellipsis
		}
		b.WriteString(" · ")
		b.WriteString(Ellipsize(list, max(12, width)))
	}
	if st.Partial {
		b.WriteString(" (partial)")
	}
	return b.String()
}

// SummarizePatch parses and renders the patch envelope in text, if any.
func SummarizePatch(text string, width int) (string, bool) {
	st, ok := ParsePatch(text)
	if !ok {
		return "", false
	}
	return st.Summary(width), true
}
