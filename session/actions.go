package session

import (
	"github.com/CrestNiraj12/termbooru/domain"
)

// ActionKind keys the dispatch table.
type ActionKind int

const (
	KindSearch ActionKind = iota
	KindSearchDone
	KindChangePage
	KindSetPage
	KindOpenPost
	KindDetailDone
	KindCommentsDone
	KindClosePost
	KindAddTag
	KindReplaceTag
	KindGoHome
	KindBack
	KindForward
	KindRestore
)

// Action is anything the session reacts to.
type Action interface {
	Kind() ActionKind
}

// Search runs a query. A nil Tags reuses the current tag string. Fresh
// forces a new history entry even when the location is unchanged.
type Search struct {
	Tags  *string
	Page  int
	Fresh bool
}

// SearchFor builds a fresh search for tags starting at the first page.
func SearchFor(tags string) Search {
	return Search{Tags: &tags, Fresh: true}
}

// SearchDone reports the outcome of a FetchPosts effect.
type SearchDone struct {
	Seq   int
	Posts []domain.Post
	Err   error
}

// ChangePage moves the page index by Delta.
type ChangePage struct{ Delta int }

// SetPage jumps to the 1-based page number typed by the user.
type SetPage struct{ Text string }

// OpenPost opens the viewer on a post from the grid.
type OpenPost struct{ Post domain.Post }

// DetailDone reports the outcome of a FetchPost effect.
type DetailDone struct {
	ID   string
	Post domain.Post
	Err  error
}

// CommentsDone reports the outcome of a FetchComments effect.
type CommentsDone struct {
	PostID   string
	Comments []domain.Comment
	Err      error
}

// ClosePost closes the viewer.
type ClosePost struct{}

// AddTag appends a tag to the query and searches again.
type AddTag struct{ Tag string }

// ReplaceTag searches for a single tag.
type ReplaceTag struct{ Tag string }

// GoHome clears the query and returns to the start screen.
type GoHome struct{}

// Back steps back in history.
type Back struct{}

// Forward steps forward in history.
type Forward struct{}

// Restore rebuilds everything from the current location, as on startup.
type Restore struct{}

func (Search) Kind() ActionKind       { return KindSearch }
func (SearchDone) Kind() ActionKind   { return KindSearchDone }
func (ChangePage) Kind() ActionKind   { return KindChangePage }
func (SetPage) Kind() ActionKind      { return KindSetPage }
func (OpenPost) Kind() ActionKind     { return KindOpenPost }
func (DetailDone) Kind() ActionKind   { return KindDetailDone }
func (CommentsDone) Kind() ActionKind { return KindCommentsDone }
func (ClosePost) Kind() ActionKind    { return KindClosePost }
func (AddTag) Kind() ActionKind       { return KindAddTag }
func (ReplaceTag) Kind() ActionKind   { return KindReplaceTag }
func (GoHome) Kind() ActionKind       { return KindGoHome }
func (Back) Kind() ActionKind         { return KindBack }
func (Forward) Kind() ActionKind      { return KindForward }
func (Restore) Kind() ActionKind      { return KindRestore }

// Effect is work the caller performs on the session's behalf.
type Effect interface {
	effect()
}

// FetchPosts asks for one page of search results.
type FetchPosts struct {
	Seq   int
	Tags  string
	Page  int
	Limit int
}

// FetchPost asks for the full detail of a post.
type FetchPost struct{ ID string }

// FetchComments asks for the comments of a post.
type FetchComments struct{ PostID string }

// StopMedia halts any media playing for the viewer.
type StopMedia struct{}

func (FetchPosts) effect()    {}
func (FetchPost) effect()     {}
func (FetchComments) effect() {}
func (StopMedia) effect()     {}
