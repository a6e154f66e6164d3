package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/codexrays/internal/state"
	"github.com/five82/codexrays/internal/summary"
	"github.com/five82/codexrays/internal/view"
)

const (
	recentShown = 3
	// header, footer and the recent panel title
	chromeRows = 3
)

// block is one item as laid out in the list.
type block struct {
	key    state.Key
	prefix string
	lines  []string
	style  summary.Style
}

func (b block) height() int { return max(1, len(b.lines)) }

// layoutKey identifies the inputs a block was laid out from. The item pointer
// distinguishes an item recreated under the same key after a clear.
type layoutKey struct {
	item   *state.Item
	rev    uint64
	width  int
	limit  int
	pretty bool
	mode   summary.Mode
}

type cachedBlock struct {
	key   layoutKey
	block block
}

// layoutCache keeps laid out blocks until their item or the layout inputs
// change, so a frame only re-wraps items that received deltas.
type layoutCache struct {
	blocks map[state.Key]cachedBlock
}

func newLayoutCache() *layoutCache {
	return &layoutCache{blocks: make(map[state.Key]cachedBlock)}
}

// prune drops entries for items the store no longer holds.
func (c *layoutCache) prune(store *state.Store) {
	for k, cb := range c.blocks {
		if it, ok := store.Get(k); !ok || it != cb.key.item {
			delete(c.blocks, k)
		}
	}
}

// blockAt lays out the item under k at the current width, reusing the cached
// layout when nothing it depends on changed.
func (m Model) blockAt(k state.Key) block {
	it, ok := m.store.Get(k)
	if !ok {
		return block{key: k}
	}
	prefix := fmt.Sprintf("%s#%d: ", summary.ShortID(k.ItemID, 12), k.OutputIndex)
	avail := max(1, m.width-ansi.StringWidth(prefix)-1)
	limit := m.cfg.LinesPerItem
	if m.view.IsExpanded(k) {
		limit = m.cfg.LinesExpanded
	}
	limit = max(1, limit)

	lk := layoutKey{item: it, rev: it.Revision(), width: avail, limit: limit, pretty: m.pretty, mode: m.mode}
	if cb, ok := m.layout.blocks[k]; ok && cb.key == lk {
		return cb.block
	}

	b := block{key: k, prefix: prefix}
	if m.pretty {
		b.lines, b.style = summary.PreviewLines(it, avail, limit, m.mode)
	} else {
		b.lines = summary.PlainLines(it, avail, limit)
		b.style = summary.StyleForType(it.TypeLabel())
	}
	m.layout.blocks[k] = cachedBlock{key: lk, block: b}
	return b
}

func (m Model) showBanner() bool {
	return !m.view.Follow && m.view.NewSince > 0
}

// listArea is the number of rows left for item blocks.
func (m Model) listArea() int {
	rows := m.height - chromeRows - recentShown
	if m.showBanner() {
		rows--
	}
	return max(0, rows)
}

// adjustScroll keeps the selected block inside the list area.
func (m Model) adjustScroll() {
	if !m.ready {
		return
	}
	order := m.order()
	selected := max(0, m.view.Index(order))
	height := func(i int) int { return m.blockAt(order[i]).height() }
	m.view.Scroll = view.AdjustScroll(m.view.Scroll, selected, len(order), height, m.listArea())
}

// renderMain renders the list screen.
func (m Model) renderMain() string {
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader())
	if m.showBanner() {
		lines = append(lines, m.renderBanner())
	}
	lines = append(lines, m.renderList()...)
	lines = append(lines, m.renderRecent()...)
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	left := " 🛟 CodeXRays"
	if m.version != "" {
		left += " " + m.version
	}
	var badges []string
	if m.view.Follow {
		badges = append(badges, "[FOLLOWING]")
	}
	if m.paused {
		badges = append(badges, "[PAUSED]")
	}

	pretty := "off"
	if m.pretty {
		pretty = string(m.mode)
	}
	stats := fmt.Sprintf("events:%d deltas:%d eps:%0.1f items:%d filt:%s pretty:%s",
		m.pipeline.Events(), m.pipeline.Deltas(), m.pipeline.EPS(), m.store.Len(), m.view.Filter, pretty)
	if n := m.store.Evicted(); n > 0 {
		stats += fmt.Sprintf(" evicted:%d", n)
	}

	head := bg.Render(left, styles.Header)
	for _, b := range badges {
		head += bg.Spaces(1) + bg.Render(b, styles.Logo)
	}
	gap := m.width - lipgloss.Width(head) - len(stats) - 1
	head += bg.Spaces(max(1, gap)) + bg.Render(stats, styles.MutedText)
	return bg.FillLine(ansi.Truncate(head, max(0, m.width), ""), m.width)
}

func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	banner := fmt.Sprintf(" (%d) newer logs -> press T to follow", m.view.NewSince)
	return styles.WarningText.Bold(true).Render(ansi.Truncate(banner, max(0, m.width-1), ""))
}

// renderList draws whole blocks from the scroll offset and pads the area.
func (m Model) renderList() []string {
	styles := m.theme.Styles()
	area := m.listArea()
	rows := make([]string, 0, area)

	order := m.order()
	for i := m.view.Scroll; i < len(order) && len(rows) < area; i++ {
		b := m.blockAt(order[i])
		selected := m.view.Selected != nil && b.key == *m.view.Selected
		prefixStyle := styles.Text.Bold(true)
		lineStyle := styles.Preview(b.style)
		if m.view.IsPinned(b.key) {
			prefixStyle = styles.AccentText.Bold(true)
		}
		if selected {
			prefixStyle = prefixStyle.Reverse(true)
			lineStyle = lineStyle.Reverse(true)
		}

		lines := b.lines
		if len(lines) == 0 {
			lines = []string{""}
		}
		indent := strings.Repeat(" ", ansi.StringWidth(b.prefix))
		for j, ln := range lines {
			if len(rows) >= area {
				break
			}
			lead := indent
			if j == 0 {
				lead = prefixStyle.Render(b.prefix)
			}
			avail := max(0, m.width-ansi.StringWidth(b.prefix)-1)
			rows = append(rows, lead+lineStyle.Render(ansi.Truncate(ln, avail, "")))
		}
	}

	for len(rows) < area {
		rows = append(rows, "")
	}
	return rows
}

// renderRecent draws the title and last few lines of the recent ring.
func (m Model) renderRecent() []string {
	styles := m.theme.Styles()
	width := max(1, m.width-1)
	rows := []string{styles.MutedText.Bold(true).Render(" Recent logs ")}

	for _, ln := range m.store.Recent().Last(recentShown) {
		var p summary.Preview
		if m.pretty {
			p = summary.RecentLine(ln, width, summary.RecentOptions{Pretty: true})
		} else {
			p = summary.LevelLine(ln, width)
		}
		st := styles.Preview(p.Style)
		text := ansi.Truncate(p.Text, width, "")
		if p.Badge != "" {
			badge := "[" + p.Badge + "]"
			text = ansi.Truncate(text, max(0, width-len(badge)-1), "")
			rows = append(rows, st.Bold(true).Render(badge)+" "+st.Render(text))
			continue
		}
		rows = append(rows, st.Render(text))
	}
	for len(rows) < recentShown+1 {
		rows = append(rows, "")
	}
	return rows
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, 16)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	help := " " + strings.Join(parts, "  ") + " "
	return styles.Footer.Render(ansi.Truncate(help, max(0, m.width-1), ""))
}
