// Package session drives searching, pagination and the post viewer as a
// plain state value. Actions go in through Dispatch; the effects that come
// out describe the network work the caller must perform and report back.
package session

import (
	"strconv"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/nav"
)

// DefaultPageSize is the number of posts requested per page.
const DefaultPageSize = 42

// ViewerStatus is the state of the post viewer.
type ViewerStatus int

const (
	ViewerClosed ViewerStatus = iota
	ViewerLoading
	ViewerReady
	ViewerError
)

func (v ViewerStatus) String() string {
	switch v {
	case ViewerLoading:
		return "loading"
	case ViewerReady:
		return "ready"
	case ViewerError:
		return "error"
	default:
		return "closed"
	}
}

// Viewer holds the single post currently open, if any.
type Viewer struct {
	Status          ViewerStatus
	PostID          string
	Post            domain.Post
	Comments        []domain.Comment
	CommentsLoading bool
	Err             error
}

// Open reports whether the viewer is showing anything.
func (v Viewer) Open() bool { return v.Status != ViewerClosed }

// query identifies the result set currently held in Posts.
type query struct {
	Tags string
	Page int
}

// Session is the whole browsing state.
type Session struct {
	Nav      nav.Sync
	Posts    []domain.Post
	Err      error // Last search failure, shown inline
	InputErr error // Last rejected user input
	Viewer   Viewer

	// PageInput is what the paginator shows; it reverts on invalid edits.
	PageInput string
	Limit     int

	Busy     bool
	ReqSeq   int
	Searched bool

	shown      query
	superseded bool
	restore    bool
}

// New creates a session positioned at the given location. Nothing is
// fetched until a Restore action is dispatched.
func New(location string, limit int) Session {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	s := Session{
		Nav:   nav.NewSync(location),
		Limit: limit,
	}
	s.PageInput = s.pageLabel()
	return s
}

// State returns the canonical browsing state.
func (s Session) State() nav.State { return s.Nav.State() }

// Location returns the current location string.
func (s Session) Location() string { return s.Nav.Location() }

func (s Session) pageLabel() string {
	return strconv.Itoa(s.Nav.State().Page + 1)
}

// Dispatch applies one action and returns the new session with the effects
// to run. Unknown actions leave the session unchanged.
func (s Session) Dispatch(a Action) (Session, []Effect) {
	if a == nil {
		return s, nil
	}
	h, ok := handlers[a.Kind()]
	if !ok {
		return s, nil
	}
	return h(s, a)
}

// replacePost swaps in the detailed copy of a post, matched by id.
func replacePost(posts []domain.Post, p domain.Post) []domain.Post {
	for i := range posts {
		if posts[i].ID != p.ID {
			continue
		}
		out := make([]domain.Post, len(posts))
		copy(out, posts)
		out[i] = p
		return out
	}
	return posts
}

func findPost(posts []domain.Post, id string) (domain.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}
