package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/infra/logging"
	"github.com/CrestNiraj12/termbooru/session"
	"github.com/CrestNiraj12/termbooru/tui/common"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.gridWidth()-lenPrompt)
		m.help.Width = msg.Width
		m.resizeComments()
		m.ensureCursorVisible()
		preview := m.ensureMediaPreviewCmd()
		return m, preview

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		m.advanceMediaFrames()
		preview := m.ensureMediaPreviewCmd()
		return m, tea.Batch(cmd, preview)

	case session.SearchDone:
		return m.dispatch(msg)
	case session.DetailDone:
		return m.dispatch(msg)
	case session.CommentsDone:
		return m.dispatch(msg)

	case DictionaryLoadedMsg:
		m.dictLoading = false
		m.dict = msg.Dict
		m.dictErr = msg.Err
		if msg.Err != nil {
			logging.Get().Warn().Err(msg.Err).Int("tags", msg.Dict.Len()).Msg("tag dictionary incomplete")
		}
		m.refreshSuggestions()
		return m, nil

	case MediaPreviewLoadedMsg:
		delete(m.mediaLoading, msg.Key)
		if msg.Err != nil {
			m.mediaPreview[msg.Key] = ""
			return m, nil
		}
		m.mediaPreview[msg.Key] = msg.Preview
		if len(msg.Frames) > 1 {
			m.mediaFrames[msg.Key] = msg.Frames
			m.mediaFrameIndex[msg.Key] = 0
		}
		return m, nil

	case ExternalResultMsg:
		if msg.Err != nil {
			m.status = common.ErrorStyle.Render(fmt.Sprintf("%s failed: %v", msg.Action, msg.Err))
			return m, nil
		}
		switch msg.Action {
		case "play":
			m.status = common.SuccessStyle.Render("Playing in external player")
		case "open":
			m.status = common.SuccessStyle.Render("Opened in browser")
		}
		return m, nil

	case ApplyQueryMsg:
		if m.sess.Busy {
			m.status = common.ErrorStyle.Render("Search in progress, try again")
			return m, nil
		}
		m.input.SetValue(msg.Query)
		return m.dispatch(session.SearchFor(msg.Query))

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	switch {
	case m.pageEditing:
		m.pageInput, cmd = m.pageInput.Update(msg)
	case m.focused:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// lenPrompt is the width of the search prompt.
const lenPrompt = 8

// dispatch feeds one action through the session and runs its effects.
func (m Model) dispatch(a session.Action) (Model, tea.Cmd) {
	before := m.sess
	m.sess, m.pending = m.sess.Dispatch(a)
	m.afterSessionChange(before)
	cmd := m.runEffects(m.pending)
	m.pending = nil
	preview := m.ensureMediaPreviewCmd()
	return m, tea.Batch(cmd, preview)
}

func (m *Model) afterSessionChange(before session.Session) {
	if !m.focused {
		m.input.SetValue(m.sess.State().Tags)
	}
	if m.sess.InputErr != nil && m.sess.InputErr != before.InputErr {
		m.status = common.ErrorStyle.Render(m.sess.InputErr.Error())
	}
	if !samePosts(before, m.sess) {
		m.cursor, m.startRow = 0, 0
	}
	m.ensureCursorVisible()

	v := m.sess.Viewer
	if v.PostID != m.viewingID {
		m.viewingID = v.PostID
		m.tagCursor = 0
		m.showAllTags = false
		m.commentView.GotoTop()
		if v.Open() {
			m.status = ""
		}
	}
	m.commentView.SetContent(m.renderComments())
}

// samePosts reports whether both sessions show the same result set, so the
// grid cursor can stay where it is.
func samePosts(a, b session.Session) bool {
	if len(a.Posts) != len(b.Posts) {
		return false
	}
	for i := range a.Posts {
		if a.Posts[i].ID != b.Posts[i].ID {
			return false
		}
	}
	return true
}

func (m *Model) resizeComments() {
	w := max(20, m.width-4)
	h := max(3, m.height-viewerRows-chromeLines-6)
	m.commentView.Width = w
	m.commentView.Height = h
	m.commentView.SetContent(m.renderComments())
}

func (m Model) renderComments() string {
	v := m.sess.Viewer
	if !v.Open() {
		return ""
	}
	if v.CommentsLoading {
		return common.MetadataStyle.Render("Loading comments...")
	}
	if len(v.Comments) == 0 {
		return common.MetadataStyle.Render("No comments.")
	}
	width := max(20, m.commentView.Width)
	blocks := make([]string, 0, len(v.Comments))
	for _, c := range v.Comments {
		author := common.AuthorStyle.Render(common.SanitizeForTerminal(c.DisplayAuthor()))
		body := common.RenderBBCode(common.SanitizeForTerminal(c.Body))
		body = common.ContentStyle.Width(width).Render(body)
		blocks = append(blocks, author+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}
