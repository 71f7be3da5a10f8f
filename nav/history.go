package nav

// History is a back/forward stack of locations.
type History struct {
	entries []string
	index   int
}

// NewHistory starts a history at the given location.
func NewHistory(location string) History {
	return History{entries: []string{location}}
}

// Current returns the location under the cursor.
func (h History) Current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.index]
}

// Len returns the number of entries.
func (h History) Len() int { return len(h.entries) }

// Index returns the cursor position.
func (h History) Index() int { return h.index }

// Push drops any forward entries and appends location.
func (h History) Push(location string) History {
	if len(h.entries) == 0 {
		return NewHistory(location)
	}
	kept := h.entries[: h.index+1 : h.index+1]
	return History{entries: append(kept, location), index: h.index + 1}
}

// Back moves the cursor one entry back, if possible.
func (h History) Back() (History, bool) {
	if h.index == 0 {
		return h, false
	}
	h.index--
	return h, true
}

// Forward moves the cursor one entry forward, if possible.
func (h History) Forward() (History, bool) {
	if h.index >= len(h.entries)-1 {
		return h, false
	}
	h.index++
	return h, true
}
