package summary

import (
	"reflect"
	"strings"
	"testing"

	"github.com/five82/codexrays/internal/event"
	"github.com/five82/codexrays/internal/state"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"summary", ModeSummary, true},
		{" Hybrid ", ModeHybrid, true},
		{"raw", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHybridLines_SummaryModeOnlySummary(t *testing.T) {
	got := hybridLines("short", "short and a lot more raw text", 40, 3, ModeSummary)
	if !reflect.DeepEqual(got, []string{"short"}) {
		t.Fatalf("hybridLines = %q, want [short]", got)
	}
}

func TestHybridLines_TailSkipsSummaryText(t *testing.T) {
	got := hybridLines("The quick", "The quick brown fox jumps", 40, 3, ModeHybrid)
	want := []string{"The quick", "brown fox jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("hybridLines = %q, want %q", got, want)
	}
}

func TestHybridLines_NoDuplicateFirstLine(t *testing.T) {
	raw := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5)
	summary := SummarizeText(outputType, raw, 40).Text
	lines := hybridLines(summary, raw, 40, 3, ModeHybrid)
	if len(lines) < 1 || len(lines) > 3 {
		t.Fatalf("len(lines) = %d, want 1..3", len(lines))
	}
	if len(lines) >= 2 && lines[0] == lines[1] {
		t.Fatalf("lines[0] == lines[1] = %q", lines[0])
	}
}

func TestHybridLines_LimitCapsSummary(t *testing.T) {
	got := hybridLines("aaaa bbbb cccc", "", 4, 2, ModeHybrid)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (%q)", len(got), got)
	}
}

func newTestItem(t *testing.T, deltas ...string) *state.Item {
	t.Helper()
	store := state.NewStore(state.Options{})
	var key state.Key
	for _, d := range deltas {
		key, _ = store.Ingest(event.Event{Kind: event.Delta, Type: outputType, ItemID: "item", Delta: d})
	}
	it, ok := store.Get(key)
	if !ok {
		t.Fatal("item missing after ingest")
	}
	return it
}

func TestPlainLines_KeepsTail(t *testing.T) {
	it := newTestItem(t, "one\ntwo\n", "three\nfour")
	got := PlainLines(it, 40, 2)
	want := []string{"three", "four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PlainLines = %q, want %q", got, want)
	}
}

func TestPreviewLines_UsesSummary(t *testing.T) {
	it := newTestItem(t, "hello ", "there")
	lines, style := PreviewLines(it, 40, 2, ModeSummary)
	if style != StyleOutput {
		t.Fatalf("style = %v, want %v", style, StyleOutput)
	}
	if len(lines) != 1 || lines[0] != "💬 hello there" {
		t.Fatalf("lines = %q, want [💬 hello there]", lines)
	}
}
