package query

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/termbooru/tui/common"
)

// View renders the editor based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("termbooru"))
		b.WriteString("  Edit query\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")
		tags := len(strings.Fields(m.textarea.Value()))
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: search • esc: cancel • %d tags", tags),
		))
		return b.String()
	}
	return ""
}
