package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Search        key.Binding // "/" focuses the tag search box
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Open          key.Binding // enter: open post / confirm
	Close         key.Binding // esc: close viewer / cancel
	NextPage      key.Binding
	PrevPage      key.Binding
	GotoPage      key.Binding // g: type a page number
	Back          key.Binding
	Forward       key.Binding
	Home          key.Binding
	Refresh       key.Binding
	ToggleSidebar key.Binding
	AddTag        key.Binding // a: add selected tag to the query
	ReplaceTag    key.Binding // t: search the selected tag alone
	MoreTags      key.Binding // m: show all tags in the viewer
	OpenBrowser   key.Binding // o: open media in the browser
	Play          key.Binding // p: play media in an external player
	EditQuery     key.Binding // e: edit query via $EDITOR
	EditInline    key.Binding // E: edit query inline
	ToggleHints   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n/]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("N", "["),
			key.WithHelp("N/[", "prev page"),
		),
		GotoPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidebar"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add tag"),
		),
		ReplaceTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "search tag"),
		),
		MoreTags: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more tags"),
		),
		OpenBrowser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play"),
		),
		EditQuery: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit query ($EDITOR)"),
		),
		EditInline: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit query (inline)"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.NextPage, k.PrevPage, k.Back, k.Quit, k.ToggleHints}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Up, k.Down, k.Left, k.Right, k.Open, k.Close},
		{k.NextPage, k.PrevPage, k.GotoPage, k.Back, k.Forward, k.Home, k.Refresh},
		{k.AddTag, k.ReplaceTag, k.MoreTags, k.OpenBrowser, k.Play},
		{k.EditQuery, k.EditInline, k.ToggleSidebar, k.ToggleHints, k.Quit},
	}
}
