package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/session"
	"github.com/CrestNiraj12/termbooru/tui/common"
)

func (m Model) renderViewer() string {
	v := m.sess.Viewer
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("termbooru") + common.QueryStyle.Render("#"+v.PostID) + "\n\n")

	switch v.Status {
	case session.ViewerLoading:
		b.WriteString(fmt.Sprintf("  %s Loading post...\n", m.spinner.View()))
		b.WriteString(m.renderViewerFooter())
		return b.String()
	case session.ViewerError:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Could not load post: %v", v.Err)) + "\n")
		b.WriteString(m.renderViewerFooter())
		return b.String()
	}

	media := m.renderViewerMedia(v.Post)
	meta := m.renderViewerMeta(v.Post)
	if m.width > 0 && m.width < viewerCols*2+30 {
		b.WriteString(media + "\n" + meta + "\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, media, "  ", meta) + "\n")
	}

	b.WriteString("\n" + m.renderTagChips(v.Post) + "\n\n")
	b.WriteString(common.AuthorStyle.Render("Comments") + "\n")
	b.WriteString(m.commentView.View() + "\n")
	b.WriteString(m.renderViewerFooter())
	return b.String()
}

func (m Model) renderViewerMedia(p domain.Post) string {
	key := viewerKey(viewerTarget(p).URL)
	preview, ok := m.mediaPreview[key]
	switch {
	case ok && preview != "":
	case m.mediaLoading[key] || !ok:
		preview = placeholder("loading preview", viewerCols, viewerRows)
	default:
		preview = placeholder("preview unavailable", viewerCols, viewerRows)
	}
	return preview
}

func (m Model) renderViewerMeta(p domain.Post) string {
	lines := []string{
		fmt.Sprintf("%dx%d %s", p.Width, p.Height, p.AspectClass()),
		"kind   " + string(p.Kind()),
	}
	if p.Rating != "" {
		lines = append(lines, "rating "+common.SanitizeForTerminal(p.Rating))
	}
	lines = append(lines, fmt.Sprintf("score  %d", p.Score))
	if p.Owner != "" {
		lines = append(lines, "by     "+common.SanitizeForTerminal(p.Owner))
	}
	if p.Source != "" {
		lines = append(lines, "source "+ansi.Truncate(common.SanitizeForTerminal(p.Source), 40, "…"))
	}
	var hint string
	switch p.Kind() {
	case domain.MediaVideo, domain.MediaGIF:
		hint = "p play · o open in browser"
	default:
		hint = "o open in browser"
	}
	for i := range lines {
		lines[i] = common.MetadataStyle.Render(lines[i])
	}
	return strings.Join(append(lines, "", common.TaglineStyle.UnsetMargins().Render(hint)), "\n")
}

func (m Model) renderTagChips(p domain.Post) string {
	all := p.TagList()
	if len(all) == 0 {
		return common.MetadataStyle.Render("no tags")
	}
	tags := m.viewerTags()
	chips := make([]string, 0, len(tags)+1)
	for i, t := range tags {
		style := common.TagStyle
		if i == m.tagCursor {
			style = common.TagActiveStyle
		}
		chips = append(chips, style.Render(common.SanitizeForTerminal(t)))
	}
	if hidden := len(all) - len(tags); hidden > 0 {
		chips = append(chips, common.MetadataStyle.Render(fmt.Sprintf("+%d more (m)", hidden)))
	} else if len(all) > visibleTagLimit {
		chips = append(chips, common.MetadataStyle.Render("less (m)"))
	}

	width := max(20, m.width-2)
	var rows []string
	var row string
	for _, c := range chips {
		if row != "" && lipgloss.Width(row)+1+lipgloss.Width(c) > width {
			rows = append(rows, row)
			row = ""
		}
		if row != "" {
			row += " "
		}
		row += c
	}
	return strings.Join(append(rows, row), "\n")
}

func (m Model) renderViewerFooter() string {
	hints := "esc close · ←/→ tag · a add tag · t search tag · ↑/↓ comments · b back"
	parts := []string{common.MetadataStyle.Render(hints)}
	if m.status != "" {
		parts = append([]string{m.status}, parts...)
	}
	return common.StatusBarStyle.Render(strings.Join(parts, "  "))
}
