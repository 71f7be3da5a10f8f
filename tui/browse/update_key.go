package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/session"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showAllHints {
		if key.Matches(msg, m.keys.ToggleHints) || msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
			m.showAllHints = false
		}
		return m, nil
	}
	if m.pageEditing {
		return m.handlePageKey(msg)
	}
	if m.focused {
		return m.handleSearchKey(msg)
	}
	if m.sess.Viewer.Open() {
		return m.handleViewerKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handlePageKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pageEditing = false
		m.pageInput.Blur()
		return m, nil
	case "enter":
		text := m.pageInput.Value()
		m.pageEditing = false
		m.pageInput.Blur()
		m.status = ""
		return m.dispatch(session.SetPage{Text: text})
	}
	var cmd tea.Cmd
	m.pageInput, cmd = m.pageInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+p":
		if m.suggestOpen {
			m.moveSuggestion(-1)
			return m, nil
		}
	case "down", "ctrl+n", "tab":
		if m.suggestOpen {
			m.moveSuggestion(1)
			return m, nil
		}
	case "esc":
		if m.suggestOpen {
			m.closeSuggestions()
			return m, nil
		}
		m.blurSearch()
		m.input.SetValue(m.sess.State().Tags)
		return m, nil
	case "enter":
		if m.acceptSuggestion() {
			return m, nil
		}
		tags := m.input.Value()
		m.blurSearch()
		m.status = ""
		return m.dispatch(session.SearchFor(tags))
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.suggestIndex = -1
		m.refreshSuggestions()
	}
	return m, cmd
}

func (m *Model) focusSearch() tea.Cmd {
	m.focused = true
	m.input.CursorEnd()
	m.refreshSuggestions()
	return m.input.Focus()
}

func (m *Model) blurSearch() {
	m.focused = false
	m.closeSuggestions()
	m.input.Blur()
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	v := m.sess.Viewer
	tags := m.viewerTags()
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
		return m.dispatch(session.ClosePost{})
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
		return m, nil
	case key.Matches(msg, m.keys.Left):
		if m.tagCursor > 0 {
			m.tagCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Right):
		if m.tagCursor < len(tags)-1 {
			m.tagCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.commentView.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.commentView.ScrollDown(1)
		return m, nil
	case msg.String() == "pgup":
		m.commentView.HalfPageUp()
		return m, nil
	case msg.String() == "pgdown":
		m.commentView.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.MoreTags):
		m.showAllTags = !m.showAllTags
		if !m.showAllTags && m.tagCursor >= visibleTagLimit {
			m.tagCursor = visibleTagLimit - 1
		}
		return m, nil
	case key.Matches(msg, m.keys.AddTag):
		if t, ok := m.selectedTag(); ok {
			return m.dispatch(session.AddTag{Tag: t})
		}
		return m, nil
	case key.Matches(msg, m.keys.ReplaceTag), key.Matches(msg, m.keys.Open):
		if t, ok := m.selectedTag(); ok {
			return m.dispatch(session.ReplaceTag{Tag: t})
		}
		return m, nil
	case key.Matches(msg, m.keys.OpenBrowser):
		if v.Status == session.ViewerReady {
			return m, openBrowser(v.Post)
		}
		return m, nil
	case key.Matches(msg, m.keys.Play):
		if v.Status == session.ViewerReady {
			m.status = "Starting player..."
			return m, playMedia(m.player, v.Post)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(session.Back{})
	case key.Matches(msg, m.keys.Forward):
		return m.dispatch(session.Forward{})
	case key.Matches(msg, m.keys.Home):
		return m.dispatch(session.GoHome{})
	}
	return m, nil
}

// viewerTags are the tag chips the viewer shows.
func (m Model) viewerTags() []string {
	tags := m.sess.Viewer.Post.TagList()
	if !m.showAllTags && len(tags) > visibleTagLimit {
		tags = tags[:visibleTagLimit]
	}
	return tags
}

func (m Model) selectedTag() (string, bool) {
	tags := m.viewerTags()
	if m.tagCursor < 0 || m.tagCursor >= len(tags) {
		return "", false
	}
	return tags[m.tagCursor], true
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
		return m, nil
	case key.Matches(msg, m.keys.Search):
		cmd := m.focusSearch()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
		preview := m.ensureMediaPreviewCmd()
		return m, preview
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
		preview := m.ensureMediaPreviewCmd()
		return m, preview
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
		preview := m.ensureMediaPreviewCmd()
		return m, preview
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
		preview := m.ensureMediaPreviewCmd()
		return m, preview
	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedPost(); ok {
			return m.dispatch(session.OpenPost{Post: p})
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		return m.dispatch(session.ChangePage{Delta: 1})
	case key.Matches(msg, m.keys.PrevPage):
		return m.dispatch(session.ChangePage{Delta: -1})
	case key.Matches(msg, m.keys.GotoPage):
		if m.query() == "" {
			return m, nil
		}
		m.pageEditing = true
		m.pageInput.SetValue(m.sess.PageInput)
		m.pageInput.CursorEnd()
		cmd := m.pageInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(session.Back{})
	case key.Matches(msg, m.keys.Forward):
		return m.dispatch(session.Forward{})
	case key.Matches(msg, m.keys.Home):
		return m.dispatch(session.GoHome{})
	case key.Matches(msg, m.keys.Refresh):
		if m.query() == "" {
			return m, nil
		}
		return m.dispatch(session.Search{Page: m.sess.State().Page})
	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebarHidden = !m.sidebarHidden
		m.ensureCursorVisible()
		preview := m.ensureMediaPreviewCmd()
		return m, tea.Batch(m.emitPrefsChanged(), preview)
	case key.Matches(msg, m.keys.EditQuery), key.Matches(msg, m.keys.EditInline):
		q := strings.TrimSpace(m.input.Value())
		inline := key.Matches(msg, m.keys.EditInline)
		return m, func() tea.Msg { return EditQueryMsg{Query: q, Inline: inline} }
	case key.Matches(msg, m.keys.OpenBrowser):
		if p, ok := m.selectedPost(); ok {
			return m, openBrowser(p)
		}
		return m, nil
	case key.Matches(msg, m.keys.Play):
		if p, ok := m.selectedPost(); ok {
			m.status = "Starting player..."
			return m, playMedia(m.player, p)
		}
		return m, nil
	}
	return m, nil
}
