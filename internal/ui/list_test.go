package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/five82/codexrays/internal/config"
	"github.com/five82/codexrays/internal/state"
)

func TestLayoutCache_ReusesUntilItemChanges(t *testing.T) {
	h := newHarness(t, nil)
	m := h.start(t, 120, 30)
	k := state.Key{ItemID: "idA"}

	h.src.push(deltaLine(outputType, "idA", "hello"))
	m = tick(t, m)
	first, ok := m.layout.blocks[k]
	if !ok {
		t.Fatal("no cached layout for idA after tick")
	}

	m = tick(t, m)
	_ = m.View()
	if got := m.layout.blocks[k].key; got != first.key {
		t.Fatalf("layout key = %+v, want unchanged %+v", got, first.key)
	}

	h.src.push(deltaLine(outputType, "idA", " again"))
	m = tick(t, m)
	if got := m.layout.blocks[k].key.rev; got <= first.key.rev {
		t.Fatalf("layout rev = %d, want > %d after a new delta", got, first.key.rev)
	}
	if out := screen(m); !strings.Contains(out, "idA#0: hello again") {
		t.Fatalf("screen missing updated item:\n%s", out)
	}
}

func TestLayoutCache_ClearedItemIsLaidOutAgain(t *testing.T) {
	h := newHarness(t, nil)
	m := h.start(t, 120, 30)

	h.src.push(deltaLine(outputType, "idA", "hello"))
	m = tick(t, m)
	m = press(t, m, "c")
	m = tick(t, m)
	if n := len(m.layout.blocks); n != 0 {
		t.Fatalf("cached layouts after clear = %d, want 0", n)
	}

	h.src.push(deltaLine(outputType, "idA", "fresh"))
	m = tick(t, m)
	out := screen(m)
	if !strings.Contains(out, "idA#0: fresh") || strings.Contains(out, "idA#0: hello") {
		t.Fatalf("screen should show only the new text:\n%s", out)
	}
}

func TestRenderList_LaysOutOnlyVisibleBlocks(t *testing.T) {
	h := newHarness(t, nil)
	m := h.start(t, 120, 30)

	lines := make([]string, 0, 60)
	for i := range 60 {
		lines = append(lines, deltaLine(outputType, fmt.Sprintf("id%02d", i), "text"))
	}
	h.src.push(lines...)
	m = tick(t, m)
	_ = m.View()

	if got, area := len(m.layout.blocks), m.listArea(); got > area {
		t.Fatalf("laid out %d blocks, want at most the %d visible rows", got, area)
	}
	if got := h.store.Len(); got != 60 {
		t.Fatalf("store.Len() = %d, want 60", got)
	}
}

func TestHeader_ShowsEvictions(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.MaxItems = 2 })
	m := h.start(t, 160, 30)

	h.src.push(
		deltaLine(outputType, "idA", "a"),
		deltaLine(outputType, "idB", "b"),
		deltaLine(outputType, "idC", "c"),
	)
	m = tick(t, m)
	if out := screen(m); !strings.Contains(out, "evicted:1") {
		t.Fatalf("screen missing eviction count:\n%s", out)
	}
}
