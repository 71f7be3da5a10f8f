package nav

// Sync pairs the canonical state with the history of its locations.
type Sync struct {
	state   State
	history History
}

// NewSync starts from a location, typically the one given at startup.
func NewSync(location string) Sync {
	st := Parse(location)
	return Sync{state: st, history: NewHistory(Encode(st))}
}

// State returns the canonical state.
func (s Sync) State() State { return s.state }

// Location returns the serialized projection of the state under the cursor.
func (s Sync) Location() string { return s.history.Current() }

// History exposes the underlying history for display.
func (s Sync) History() History { return s.history }

// Apply merges the patch into the state. A new history entry is pushed
// when forcePush is set or the location changed; otherwise the history is
// left alone. The second result reports whether an entry was pushed.
func (s Sync) Apply(p Patch, forcePush bool) (Sync, bool) {
	s.state = p.Merge(s.state)
	loc := Encode(s.state)
	if !forcePush && loc == s.history.Current() {
		return s, false
	}
	s.history = s.history.Push(loc)
	return s, true
}

// Back steps back in history and rebuilds the state from that location.
func (s Sync) Back() (Sync, bool) {
	h, ok := s.history.Back()
	if !ok {
		return s, false
	}
	s.history = h
	s.state = Parse(h.Current())
	return s, true
}

// Forward steps forward in history and rebuilds the state from that location.
func (s Sync) Forward() (Sync, bool) {
	h, ok := s.history.Forward()
	if !ok {
		return s, false
	}
	s.history = h
	s.state = Parse(h.Current())
	return s, true
}
