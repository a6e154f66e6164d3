package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// List navigation
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Follow key.Binding

	// Item actions
	Pin    key.Binding
	Expand key.Binding
	Export key.Binding
	Copy   key.Binding

	// Stream control
	Filter    key.Binding
	Clear     key.Binding
	Pause     key.Binding
	FromStart key.Binding
	Refresh   key.Binding
	Pretty    key.Binding

	// Detail view
	Back       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Wrap       key.Binding
	JSONPretty key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),

		// List navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↩", "open"),
		),
		Follow: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "follow"),
		),

		// Item actions
		Pin: key.NewBinding(
			key.WithKeys("x", "X"),
			key.WithHelp("x", "pin"),
		),
		Expand: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "more"),
		),
		Export: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "export"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "copy"),
		),

		// Stream control
		Filter: key.NewBinding(
			key.WithKeys("f", "F"),
			key.WithHelp("f", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "C"),
			key.WithHelp("c", "clear"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		FromStart: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "toggle start"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "refresh"),
		),
		Pretty: key.NewBinding(
			key.WithKeys("b", "B"),
			key.WithHelp("b", "pretty-mode"),
		),

		// Detail view
		Back: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "back"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "bottom"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w", "W"),
			key.WithHelp("w", "wrap"),
		),
		JSONPretty: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "json"),
		),
	}
}

// ShortHelp returns key bindings for the list footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Quit, k.Up, k.Open, k.Pin, k.Export, k.Copy, k.Filter, k.Clear,
		k.Pause, k.FromStart, k.Follow, k.Refresh, k.Pretty, k.Expand, k.Help,
	}
}

// FullHelp returns key bindings for the help overlay, grouped as list,
// item, stream, detail and general.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Follow},
		{k.Pin, k.Expand, k.Export, k.Copy},
		{k.Filter, k.Clear, k.Pause, k.FromStart, k.Refresh, k.Pretty},
		{k.PageUp, k.PageDown, k.Top, k.Bottom, k.Wrap, k.JSONPretty, k.Back},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
