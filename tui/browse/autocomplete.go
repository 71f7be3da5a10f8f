package browse

import (
	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/tagdict"
)

func (m Model) suggestions() []domain.Tag {
	if !m.focused || !m.suggestOpen {
		return nil
	}
	return m.dict.Suggest(m.input.Value(), m.suggestOpts)
}

// refreshSuggestions reopens the list after the input changed and drops a
// highlight that no longer points at anything.
func (m *Model) refreshSuggestions() {
	m.suggestOpen = m.focused && len(m.dict.Suggest(m.input.Value(), m.suggestOpts)) > 0
	if !m.suggestOpen {
		m.suggestIndex = -1
		return
	}
	if n := len(m.suggestions()); m.suggestIndex >= n {
		m.suggestIndex = n - 1
	}
}

func (m *Model) moveSuggestion(delta int) {
	n := len(m.suggestions())
	if n == 0 {
		m.suggestIndex = -1
		return
	}
	next := m.suggestIndex + delta
	switch {
	case next < -1:
		next = n - 1
	case next >= n:
		next = -1
	}
	m.suggestIndex = next
}

// acceptSuggestion replaces the active token with the highlighted tag.
func (m *Model) acceptSuggestion() bool {
	list := m.suggestions()
	if m.suggestIndex < 0 || m.suggestIndex >= len(list) {
		return false
	}
	m.input.SetValue(tagdict.Replace(m.input.Value(), list[m.suggestIndex]))
	m.input.CursorEnd()
	m.suggestIndex = -1
	m.refreshSuggestions()
	return true
}

func (m *Model) closeSuggestions() {
	m.suggestOpen = false
	m.suggestIndex = -1
}
