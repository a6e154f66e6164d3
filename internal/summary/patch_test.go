package summary

import (
	"strings"
	"testing"
)

const samplePatch = "*** Begin Patch\n" +
	"*** Add File: foo.txt\n" +
	"+hello\n" +
	"*** Update File: src/bar.py\n" +
	"@@\n" +
	"-old\n" +
	"+new\n" +
	"*** End Patch"

func TestParsePatch(t *testing.T) {
	st, ok := ParsePatch(samplePatch)
	if !ok {
		t.Fatal("ParsePatch ok = false, want true")
	}
	if st.Add != 1 || st.Update != 1 || st.Delete != 0 {
		t.Fatalf("files = %d/%d/%d, want 1/1/0", st.Add, st.Update, st.Delete)
	}
	if st.Plus != 2 || st.Minus != 1 {
		t.Fatalf("lines = +%d -%d, want +2 -1", st.Plus, st.Minus)
	}
	if st.Partial {
		t.Fatal("Partial = true, want false")
	}
	if len(st.Files) != 2 || st.Files[1].Name != "bar.py" {
		t.Fatalf("Files = %+v, want foo.txt and bar.py", st.Files)
	}
}

func TestSummarizePatch(t *testing.T) {
	got, ok := SummarizePatch(samplePatch, 80)
	if !ok {
		t.Fatal("SummarizePatch ok = false, want true")
	}
	for _, want := range []string{"🧩 patch:", "+", "✏️", "foo.txt"} {
		if !strings.Contains(got, want) {
			t.Fatalf("SummarizePatch = %q, want it to contain %q", got, want)
		}
	}
}

func TestParsePatch_Partial(t *testing.T) {
	st, ok := ParsePatch("*** Begin Patch\n*** Add File: a.go\n+package a\n")
	if !ok || !st.Partial {
		t.Fatalf("ParsePatch = %+v, %v; want partial stat", st, ok)
	}
	if !strings.HasSuffix(st.Summary(40), "(partial)") {
		t.Fatalf("Summary = %q, want (partial) suffix", st.Summary(40))
	}
}

func TestParsePatch_EscapedNewlines(t *testing.T) {
	st, ok := ParsePatch(`apply_patch "*** Begin Patch\n*** Delete File: old/x.go\n*** End Patch"`)
	if !ok {
		t.Fatal("ParsePatch ok = false, want true")
	}
	if st.Delete != 1 || st.Files[0].Name != "x.go" {
		t.Fatalf("stat = %+v, want one delete of x.go", st)
	}
}

func TestParsePatch_ManyFilesListsThree(t *testing.T) {
	var b strings.Builder
	b.WriteString("*** Begin Patch\n")
	for _, n := range []string{"a", "b", "c", "d"} {
		b.WriteString("*** Add File: " + n + ".go\n")
	}
	b.WriteString("*** End Patch")
	got, _ := SummarizePatch(b.String(), 80)
	if strings.Contains(got, "d.go") || !strings.Contains(got, "…") {
		t.Fatalf("SummarizePatch = %q, want three files and an ellipsis", got)
	}
}

func TestParsePatch_NoEnvelope(t *testing.T) {
	if _, ok := ParsePatch("just text"); ok {
		t.Fatal("ParsePatch ok = true, want false")
	}
	if _, ok := ParsePatch("apply_patch but no begin marker"); ok {
		t.Fatal("ParsePatch ok = true without begin marker, want false")
	}
}
