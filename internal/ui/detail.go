package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/codexrays/internal/summary"
)

const goneMessage = "<item no longer available>"

// detailHeight leaves one row for the title and one for the footer.
func (m Model) detailHeight() int {
	return max(1, m.height-2)
}

func (m *Model) openDetail() {
	if m.view.Selected == nil {
		return
	}
	k := *m.view.Selected
	if _, ok := m.store.Get(k); !ok {
		return
	}
	m.detail = &k
	m.goneAt = time.Time{}
	m.refreshDetail()
	m.detailVP.GotoTop()
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.goneAt = time.Time{}
}

// refreshDetail reloads the viewport from the live item, keeping the scroll
// offset.
func (m *Model) refreshDetail() {
	if m.detail == nil || !m.ready {
		return
	}
	it, ok := m.store.Get(*m.detail)
	if !ok {
		return
	}
	m.detailVP.SetContent(strings.Join(m.detailLines(it.TypeLabel(), it.Snapshot()), "\n"))
}

// detailLines renders the full item text. Valid JSON is pretty-printed and
// highlighted when enabled; everything else is hard-wrapped.
func (m Model) detailLines(label, text string) []string {
	styles := m.theme.Styles()
	width := max(1, m.width-2)
	content := strings.ReplaceAll(text, "\r", "")

	if m.jsonPretty {
		if lines, ok := summary.PrettyJSON(content); ok {
			if m.prefs.WrapJSON() {
				lines = summary.WrapIndented(lines, width)
			}
			out := make([]string, len(lines))
			for i, ln := range lines {
				var b strings.Builder
				for _, seg := range summary.JSONSegments(ln) {
					b.WriteString(styles.JSON(seg.Kind).Render(seg.Text))
				}
				out[i] = b.String()
			}
			return out
		}
	}

	st := styles.Preview(summary.StyleForType(label))
	lines := summary.Wrap(content, width)
	for i, ln := range lines {
		lines[i] = st.Render(ln)
	}
	return lines
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	k := *m.detail
	if _, ok := m.store.Get(k); !ok {
		m.closeDetail()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
	case key.Matches(msg, m.keys.Up):
		m.detailVP.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.detailVP.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.detailVP.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.detailVP.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.detailVP.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailVP.GotoBottom()
	case key.Matches(msg, m.keys.Wrap):
		m.prefs.SetWrapJSON(!m.prefs.WrapJSON())
		m.savePrefs()
		m.refreshDetail()
	case key.Matches(msg, m.keys.JSONPretty):
		m.jsonPretty = !m.jsonPretty
		m.refreshDetail()
	case key.Matches(msg, m.keys.Export):
		m.exportItem(k)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyItem(k)
	case key.Matches(msg, m.keys.Pin):
		m.view.TogglePinKey(k)
	}
	return m, nil
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	k := *m.detail

	it, ok := m.store.Get(k)
	if !ok {
		return styles.Selected.Render(ansi.Truncate(goneMessage, max(0, m.width-1), ""))
	}

	title := fmt.Sprintf(" View — %s#%d [%s] ", k.ItemID, k.OutputIndex, it.TypeLabel())
	if seq, ok := it.LastSequence(); ok {
		title += fmt.Sprintf("seq:%d ", seq)
	}
	title += fmt.Sprintf("chars:%d ", it.Chars())
	if m.view.IsPinned(k) {
		title += "📌 "
	}
	header := styles.Header.Render(ansi.Truncate(title, max(0, m.width-1), ""))

	onOff := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	footer := fmt.Sprintf(" ↑/↓/PgUp/PgDn/Home/End scroll  w:wrap(%s)  J:json(%s)  e:export  y:copy  x:pin  q/esc:back ",
		onOff(m.jsonPretty && m.prefs.WrapJSON()), onOff(m.jsonPretty))

	return header + "\n" + m.detailVP.View() + "\n" +
		styles.Footer.Render(ansi.Truncate(footer, max(0, m.width-1), ""))
}
