package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/codexrays/internal/config"
	"github.com/five82/codexrays/internal/export"
	"github.com/five82/codexrays/internal/ingest"
	"github.com/five82/codexrays/internal/logtail"
	"github.com/five82/codexrays/internal/prefs"
	"github.com/five82/codexrays/internal/state"
	"github.com/five82/codexrays/internal/summary"
	"github.com/five82/codexrays/internal/view"
)

// DefaultTick is the frame interval, about 50 frames per second.
const DefaultTick = 20 * time.Millisecond

// goneDelay is how long the detail view shows a vanished item before
// returning to the list.
const goneDelay = 500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Config   config.Config
	Pipeline *ingest.Pipeline
	// Tailer is reset by the toggle-start key. It may be nil.
	Tailer    *logtail.Tailer
	View      *view.State
	Prefs     prefs.Prefs
	PrefsPath string
	Copier    export.Copier
	Version   string
	Tick      time.Duration
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea. Bubble Tea delivers
// every message on one goroutine, so the store, view state and tailer are
// owned here without locking.
type Model struct {
	// Configuration
	cfg       config.Config
	pipeline  *ingest.Pipeline
	store     *state.Store
	tailer    *logtail.Tailer
	view      *view.State
	copier    export.Copier
	prefs     prefs.Prefs
	prefsPath string
	version   string
	tick      time.Duration
	now       func() time.Time
	keys      keyMap
	layout    *layoutCache

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	paused   bool
	showHelp bool
	reopens  int

	// Preview state
	pretty     bool
	mode       summary.Mode
	jsonPretty bool

	// Detail state
	detail   *state.Key
	detailVP viewport.Model
	goneAt   time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	tick := opts.Tick
	if tick == 0 {
		tick = DefaultTick
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	v := opts.View
	if v == nil {
		v = view.New()
	}

	mode, ok := summary.ParseMode(opts.Config.PrettyMode)
	if !ok {
		mode = summary.ModeSummary
	}

	return Model{
		cfg:        opts.Config,
		pipeline:   opts.Pipeline,
		store:      opts.Pipeline.Store(),
		tailer:     opts.Tailer,
		view:       v,
		copier:     opts.Copier,
		prefs:      opts.Prefs,
		prefsPath:  prefsPath,
		version:    opts.Version,
		tick:       tick,
		now:        now,
		keys:       DefaultKeyMap(),
		layout:     newLayoutCache(),
		theme:      GetTheme(opts.Prefs.Theme),
		pretty:     opts.Config.PrettyPreview,
		mode:       mode,
		jsonPretty: opts.Config.JSONPretty,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailVP = viewport.New(m.width, m.detailHeight())
		}
		m.ready = true
		m.detailVP.Width = m.width
		m.detailVP.Height = m.detailHeight()
		m.adjustScroll()
		m.refreshDetail()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case copiedMsg:
		if msg.err != nil {
			m.pipeline.Note(fmt.Sprintf("ERROR copy failed: %v", msg.err))
		} else {
			m.pipeline.Note(fmt.Sprintf("INFO copied %s via %s", msg.key, msg.method))
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.detail != nil {
		return m.renderDetail()
	}

	return m.renderMain()
}

// handleKey dispatches a key press to the active mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	order := m.order()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.view.Move(-1, order)
	case key.Matches(msg, m.keys.Down):
		m.view.Move(1, order)
	case key.Matches(msg, m.keys.Open):
		m.openDetail()
	case key.Matches(msg, m.keys.Follow):
		m.view.FollowNewest(order)
	case key.Matches(msg, m.keys.Pin):
		m.view.TogglePin()
	case key.Matches(msg, m.keys.Expand):
		m.view.ToggleExpanded()
	case key.Matches(msg, m.keys.Export):
		if m.view.Selected != nil {
			m.exportItem(*m.view.Selected)
		}
	case key.Matches(msg, m.keys.Copy):
		if m.view.Selected != nil {
			return m, m.copyItem(*m.view.Selected)
		}
	case key.Matches(msg, m.keys.Filter):
		m.view.CycleFilter()
	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.FromStart):
		m.toggleFromStart()
	case key.Matches(msg, m.keys.Pretty):
		m.cyclePretty()
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Refresh):
		// Repainted on the next tick.
	}

	m.view.Sync(m.order())
	m.adjustScroll()
	return m, nil
}

// handleTick drains the log, samples the rate meter and schedules the next
// frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		// Source errors are logged by the tailer; a missing file is retried.
		_, _ = m.pipeline.Drain()
	}
	if m.tailer != nil && m.tailer.Reopens() > m.reopens {
		m.reopens = m.tailer.Reopens()
		m.pipeline.Note(fmt.Sprintf("INFO log rotated or truncated, reopened (%d)", m.reopens))
	}
	m.pipeline.Sample()
	m.layout.prune(m.store)
	m.view.Sync(m.order())
	m.adjustScroll()

	if m.detail != nil {
		if _, ok := m.store.Get(*m.detail); !ok {
			if m.goneAt.IsZero() {
				m.goneAt = m.now()
			} else if m.now().Sub(m.goneAt) >= goneDelay {
				m.closeDetail()
			}
		} else {
			m.refreshDetail()
		}
	}

	return m, tickCmd(m.tick)
}

func (m Model) order() []state.Key {
	return m.view.Order(m.store.Items())
}

// cyclePretty steps through off, summary and hybrid previews.
func (m *Model) cyclePretty() {
	switch {
	case !m.pretty:
		m.pretty = true
		m.mode = summary.ModeSummary
	case m.mode == summary.ModeSummary:
		m.mode = summary.ModeHybrid
	default:
		m.pretty = false
		m.mode = summary.ModeSummary
	}
}

func (m *Model) cycleTheme() {
	name := NextTheme(m.theme.Name)
	m.theme = GetTheme(name)
	m.prefs.Theme = name
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// toggleFromStart switches between replaying the whole file and tailing its
// end. Items are dropped so a replay does not append to existing text.
func (m *Model) toggleFromStart() {
	if m.tailer == nil {
		return
	}
	fromStart := m.tailer.ToggleFromStart()
	m.store.Clear()
	mode := "tail"
	if fromStart {
		mode = "from start"
	}
	m.pipeline.Note("INFO reading " + mode)
}

func (m *Model) exportItem(k state.Key) {
	it, ok := m.store.Get(k)
	if !ok {
		return
	}
	path, err := export.Write(m.cfg.ExportDir, k, it.Snapshot(), m.now())
	if err != nil {
		m.pipeline.Note(fmt.Sprintf("ERROR export failed: %v", err))
		return
	}
	m.pipeline.Note("INFO export -> " + path)
}

// copyItem returns a command copying the item text to the clipboard.
func (m Model) copyItem(k state.Key) tea.Cmd {
	it, ok := m.store.Get(k)
	if !ok {
		return nil
	}
	return copyCmd(m.copier, k, it.Snapshot())
}

// Messages

type tickMsg time.Time

type copiedMsg struct {
	key    state.Key
	method export.Method
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func copyCmd(c export.Copier, k state.Key, text string) tea.Cmd {
	return func() tea.Msg {
		method, err := c.Copy(text)
		return copiedMsg{key: k, method: method, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. A copier without a terminal writer shares the program's
// output so OSC 52 sequences never land inside a frame.
func Run(ctx context.Context, opts Options) error {
	out := newLockedOutput(os.Stdout)
	if opts.Copier.Term == nil {
		opts.Copier.Term = out
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
