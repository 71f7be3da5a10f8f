// Package query edits a long tag query outside the one-line search box,
// either in $EDITOR or in an inline textarea with one tag per line.
package query

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when editing is complete (success or cancel).
type DoneMsg struct {
	Query     string
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Editor prepares and reads back an external editing session.
type Editor interface {
	Cmd(query string) (*exec.Cmd, string, error)
	ReadQuery(path string) (string, error)
}

// --- Model ---

// Model holds the state for the query editor.
type Model struct {
	mode     mode
	editor   Editor
	status   string
	textarea textarea.Model // Only used in inline mode
	original string
}

// NewEditor creates a model that opens $EDITOR via tea.ExecProcess.
func NewEditor(ed Editor, current string) Model {
	return Model{
		mode:     editorMode,
		editor:   ed,
		status:   "Opening editor...",
		original: normalize(current),
	}
}

// NewInline creates a model with an inline textarea, one tag per line.
func NewInline(current string) Model {
	ta := textarea.New()
	ta.Placeholder = "one tag per line"
	ta.SetValue(strings.Join(strings.Fields(current), "\n"))
	ta.SetWidth(48)
	ta.SetHeight(10)
	ta.ShowLineNumbers = false
	ta.Focus()

	return Model{
		mode:     inlineMode,
		textarea: ta,
		original: normalize(current),
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess to
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	if m.editor == nil {
		return done(DoneMsg{Err: fmt.Errorf("no editor configured")})
	}
	cmd, tmpPath, err := m.editor.Cmd(m.original)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)})
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the query editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err)})
		}
		q, err := m.editor.ReadQuery(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err})
		}
		return m, m.finish(q)

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true})
		case "ctrl+d", "ctrl+s":
			return m, m.finish(m.textarea.Value())
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

// finish reports the edited query; an unchanged query counts as cancel.
func (m Model) finish(raw string) tea.Cmd {
	q := normalize(raw)
	if q == m.original {
		return done(DoneMsg{Query: q, Cancelled: true})
	}
	return done(DoneMsg{Query: q})
}

func normalize(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
