package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/tagdict"
	"github.com/CrestNiraj12/termbooru/tui/common"
)

// View renders the browser.
func (m Model) View() string {
	if m.showAllHints {
		return m.renderHintsDialog()
	}
	if m.sess.Viewer.Open() {
		return m.fit(m.renderViewer())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	b.WriteString(m.renderSearchBox() + "\n")

	body := m.renderBody()
	if !m.sidebarHidden && m.width > sidebarWidth+cellWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}
	b.WriteString(body + "\n")
	b.WriteString(m.renderPaginator() + "\n")
	b.WriteString(m.renderStatusBar())
	return m.fit(b.String())
}

// fit keeps the frame inside the terminal.
func (m Model) fit(s string) string {
	s = common.ClampLinesToWidth(s, m.width)
	if m.height > 0 {
		s = common.ClipLines(s, m.height)
	}
	return s
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("termbooru")
	q := m.query()
	if q == "" {
		return title + common.TaglineStyle.Render("<browse by tags>")
	}
	return title + common.QueryStyle.Render(ansi.Truncate(common.SanitizeForTerminal(q), max(10, m.width-14), "…"))
}

func (m Model) renderSearchBox() string {
	var b strings.Builder
	b.WriteString(" " + m.input.View())
	list := m.suggestions()
	if len(list) == 0 {
		return b.String()
	}
	token := tagdict.ActiveToken(m.input.Value())
	for i, t := range list {
		matched, rest := tagdict.Highlight(t.Label, token)
		row := common.MatchStyle.Render(matched) + rest + common.MetadataStyle.Render(fmt.Sprintf(" (%d)", t.Count))
		style := common.SuggestionStyle
		if i == m.suggestIndex {
			style = common.SuggestionActiveStyle
			row = "› " + row
		} else {
			row = "  " + row
		}
		b.WriteString("\n" + style.Render(row))
	}
	return b.String()
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render("Query") + "\n")
	tags := strings.Fields(m.query())
	if len(tags) == 0 {
		b.WriteString(common.MetadataStyle.Render("(none)") + "\n")
	}
	for _, t := range tags {
		b.WriteString(common.TagStyle.Render(ansi.Truncate(common.SanitizeForTerminal(t), sidebarWidth-6, "…")) + "\n")
	}

	b.WriteString("\n" + common.AuthorStyle.Render("Tags") + "\n")
	switch {
	case m.dictLoading:
		b.WriteString(m.spinner.View() + " loading\n")
	case m.dict.Len() == 0:
		b.WriteString(common.MetadataStyle.Render("autocomplete off") + "\n")
	default:
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("%d known", m.dict.Len())) + "\n")
	}

	if p, ok := m.selectedPost(); ok {
		b.WriteString("\n" + common.AuthorStyle.Render("Selected") + "\n")
		b.WriteString(common.MetadataStyle.Render("#"+p.ID) + "\n")
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("%dx%d %s", p.Width, p.Height, p.AspectClass())) + "\n")
		b.WriteString(common.MetadataStyle.Render(string(p.Kind())))
	}
	h := max(1, m.height-chromeLines)
	return common.SidebarStyle.Width(sidebarWidth).Height(h).Render(b.String())
}

func (m Model) renderBody() string {
	s := m.sess
	switch {
	case !s.Searched && m.query() == "":
		return m.renderHome()
	case s.Busy && len(s.Posts) == 0:
		return fmt.Sprintf("  %s Searching...", m.spinner.View())
	case s.Err != nil:
		return common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", s.Err)) + "\n\n  Press r to retry."
	case len(m.visiblePosts()) == 0:
		return "  No posts found."
	}
	return m.renderGrid()
}

func (m Model) renderHome() string {
	lines := []string{
		"",
		common.AppTitleStyle.Render("termbooru"),
		common.TaglineStyle.Render("Press / and type some tags to start."),
		"",
		common.MetadataStyle.Render("e edit query in $EDITOR · ? all keys · q quit"),
	}
	return lipgloss.NewStyle().Width(m.gridWidth()).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func (m Model) renderGrid() string {
	idx := m.visiblePosts()
	from, to := m.visibleRange(len(idx))
	cols := m.gridColumns()

	var rows []string
	var row []string
	for i := from; i < to; i++ {
		row = append(row, m.renderCell(m.sess.Posts[idx[i]], i == m.cursor))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if m.sess.Busy {
		rows = append(rows, fmt.Sprintf("  %s Searching...", m.spinner.View()))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCell(p domain.Post, selected bool) string {
	thumb, ok := m.mediaPreview[gridKey(p.PreviewURL)]
	switch {
	case ok && thumb != "":
	case m.mediaLoading[gridKey(p.PreviewURL)] || !ok:
		thumb = placeholder("…", thumbCols, thumbRows)
	default:
		thumb = placeholder("no preview", thumbCols, thumbRows)
	}
	caption := "#" + p.ID
	if k := p.Kind(); k != domain.MediaImage {
		caption += " " + string(k)
	}
	caption = ansi.Truncate(caption, thumbCols*2, "…")

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Render(thumb + "\n" + common.MetadataStyle.Render(caption))
}

func (m Model) renderPaginator() string {
	if m.query() == "" && !m.sess.Searched {
		return ""
	}
	if m.pageEditing {
		return " " + m.pageInput.View()
	}
	left, right := "◀", "▶"
	if m.sess.State().Page == 0 {
		left = " "
	}
	label := fmt.Sprintf(" %s page %s %s", left, m.sess.PageInput, right)
	return common.PaginatorStyle.Render(label)
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	return common.StatusBarStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderHintsDialog() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF6600")).
		Padding(1, 2).
		Render(common.AppTitleStyle.UnsetPadding().Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp()) +
			"\n\n" + common.MetadataStyle.Render("? / esc to close"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
