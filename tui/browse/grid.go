package browse

import "github.com/CrestNiraj12/termbooru/domain"

const (
	cellWidth  = thumbCols*2 + 4 // Thumbnail, padding and border
	cellHeight = thumbRows + 3   // Thumbnail, caption and border
)

// chromeLines is the space taken by the header, search box, paginator
// and status/help rows.
const chromeLines = 7

func (m Model) gridWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if !m.sidebarHidden && w > sidebarWidth+cellWidth {
		w -= sidebarWidth + 1
	}
	return w
}

func (m Model) gridColumns() int {
	return max(1, m.gridWidth()/cellWidth)
}

func (m Model) gridVisibleRows() int {
	h := m.height
	if h <= 0 {
		h = 24
	}
	h -= chromeLines
	if m.suggestOpen {
		h -= min(len(m.suggestions()), m.suggestOpts.MaxItems)
	}
	return max(1, h/cellHeight)
}

// visibleRange is the slice of the n renderable posts currently on screen.
func (m Model) visibleRange(n int) (int, int) {
	cols := m.gridColumns()
	from := min(m.startRow*cols, n)
	to := min(from+m.gridVisibleRows()*cols, n)
	return from, to
}

func (m *Model) ensureCursorVisible() {
	n := len(m.visiblePosts())
	if n == 0 {
		m.cursor, m.startRow = 0, 0
		return
	}
	m.cursor = max(0, min(m.cursor, n-1))
	cols := m.gridColumns()
	rows := m.gridVisibleRows()
	row := m.cursor / cols
	if row < m.startRow {
		m.startRow = row
	}
	if row >= m.startRow+rows {
		m.startRow = row - rows + 1
	}
	lastRow := (n - 1) / cols
	m.startRow = max(0, min(m.startRow, lastRow-rows+1))
}

func (m *Model) moveCursor(dx, dy int) {
	n := len(m.visiblePosts())
	if n == 0 {
		return
	}
	cols := m.gridColumns()
	next := m.cursor + dx + dy*cols
	if next < 0 || next >= n {
		if dy != 0 {
			return
		}
		next = max(0, min(next, n-1))
	}
	m.cursor = next
	m.ensureCursorVisible()
}

func (m Model) selectedPost() (domain.Post, bool) {
	idx := m.visiblePosts()
	if m.cursor < 0 || m.cursor >= len(idx) {
		return domain.Post{}, false
	}
	return m.sess.Posts[idx[m.cursor]], true
}
