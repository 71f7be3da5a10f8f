package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/nav"
)

type handler func(Session, Action) (Session, []Effect)

var handlers = map[ActionKind]handler{
	KindSearch:       handleSearch,
	KindSearchDone:   handleSearchDone,
	KindChangePage:   handleChangePage,
	KindSetPage:      handleSetPage,
	KindOpenPost:     handleOpenPost,
	KindDetailDone:   handleDetailDone,
	KindCommentsDone: handleCommentsDone,
	KindClosePost:    handleClosePost,
	KindAddTag:       handleAddTag,
	KindReplaceTag:   handleReplaceTag,
	KindGoHome:       handleGoHome,
	KindBack:         handleBack,
	KindForward:      handleForward,
	KindRestore:      handleRestore,
}

// --- Search / pagination ---

func handleSearch(s Session, a Action) (Session, []Effect) {
	act := a.(Search)
	tags := s.Nav.State().Tags
	if act.Tags != nil {
		tags = *act.Tags
	}
	return s.search(tags, act.Page, true, act.Fresh)
}

// search issues a FetchPosts effect unless one is already in flight, in
// which case the call is dropped. When record is set the query is written
// to the location and any open viewer is closed.
func (s Session) search(tags string, page int, record, fresh bool) (Session, []Effect) {
	if s.Busy {
		return s, nil
	}
	tags = nav.NormalizeTags(tags)
	page = max(page, 0)

	var effects []Effect
	if record {
		if s.Viewer.Open() {
			s.Viewer = Viewer{}
			effects = append(effects, StopMedia{})
		}
		patch := nav.Patch{}.WithTags(tags).WithPage(page).WithMode(nav.ModeList).WithPostID("")
		s.Nav, _ = s.Nav.Apply(patch, fresh)
	}

	s.ReqSeq++
	s.Busy = true
	s.Searched = true
	s.Err = nil
	s.InputErr = nil
	return s, append(effects, FetchPosts{Seq: s.ReqSeq, Tags: tags, Page: page, Limit: s.Limit})
}

func handleSearchDone(s Session, a Action) (Session, []Effect) {
	act := a.(SearchDone)
	if !s.Busy || act.Seq != s.ReqSeq {
		return s, nil
	}
	s.Busy = false
	if s.superseded {
		s.superseded = false
		if s.restore {
			s.restore = false
			return s.rebuild()
		}
		return s, nil
	}

	st := s.Nav.State()
	s.shown = query{Tags: st.Tags, Page: st.Page}
	s.PageInput = s.pageLabel()
	if act.Err != nil {
		s.Posts = nil
		s.Err = act.Err
		return s, nil
	}
	s.Posts = act.Posts
	if s.Viewer.Status == ViewerReady {
		s.Posts = replacePost(s.Posts, s.Viewer.Post)
	}
	s.Err = nil
	return s, nil
}

func handleChangePage(s Session, a Action) (Session, []Effect) {
	act := a.(ChangePage)
	st := s.Nav.State()
	next := st.Page + act.Delta
	if next < 0 {
		return s, nil
	}
	return s.search(st.Tags, next, true, false)
}

func handleSetPage(s Session, a Action) (Session, []Effect) {
	act := a.(SetPage)
	st := s.Nav.State()
	n, err := strconv.Atoi(strings.TrimSpace(act.Text))
	next := n - 1
	if err != nil || next < 0 {
		s.PageInput = s.pageLabel()
		s.InputErr = fmt.Errorf("%q: %w", act.Text, domain.ErrInvalidPage)
		return s, nil
	}
	if next == st.Page {
		s.PageInput = s.pageLabel()
		return s, nil
	}
	out, effects := s.search(st.Tags, next, true, false)
	if len(effects) == 0 {
		out.PageInput = out.pageLabel()
	}
	return out, effects
}

// --- Tag shortcuts from the viewer ---

func handleAddTag(s Session, a Action) (Session, []Effect) {
	tag := strings.TrimSpace(a.(AddTag).Tag)
	if tag == "" {
		s.InputErr = domain.ErrEmptyTag
		return s, nil
	}
	current := strings.Fields(s.Nav.State().Tags)
	if slices.Contains(current, tag) {
		return s, nil
	}
	return s.search(strings.Join(append(current, tag), " "), 0, true, false)
}

func handleReplaceTag(s Session, a Action) (Session, []Effect) {
	tag := strings.TrimSpace(a.(ReplaceTag).Tag)
	if tag == "" {
		s.InputErr = domain.ErrEmptyTag
		return s, nil
	}
	return s.search(tag, 0, true, false)
}

// --- Viewer ---

func handleOpenPost(s Session, a Action) (Session, []Effect) {
	post := a.(OpenPost).Post
	if post.ID == "" {
		return s, nil
	}
	s.Nav, _ = s.Nav.Apply(nav.Patch{}.WithMode(nav.ModeView).WithPostID(post.ID), false)
	return s.openViewer(post)
}

// openViewer discards whatever was open and starts loading post. The
// location must already point at the post.
func (s Session) openViewer(post domain.Post) (Session, []Effect) {
	var effects []Effect
	if s.Viewer.Open() {
		effects = append(effects, StopMedia{})
	}
	if post.HasDetail() {
		s.Viewer = Viewer{Status: ViewerReady, PostID: post.ID, Post: post, CommentsLoading: true}
		return s, append(effects, FetchComments{PostID: post.ID})
	}
	s.Viewer = Viewer{Status: ViewerLoading, PostID: post.ID, Post: post}
	return s, append(effects, FetchPost{ID: post.ID})
}

func handleDetailDone(s Session, a Action) (Session, []Effect) {
	act := a.(DetailDone)
	if s.Viewer.Status != ViewerLoading || act.ID != s.Viewer.PostID {
		return s, nil
	}
	if act.Err != nil {
		s.Viewer.Status = ViewerError
		s.Viewer.Err = act.Err
		return s, nil
	}
	post := act.Post
	post.ID = act.ID
	s.Posts = replacePost(s.Posts, post)
	s.Viewer.Status = ViewerReady
	s.Viewer.Post = post
	s.Viewer.Err = nil
	s.Viewer.CommentsLoading = true
	return s, []Effect{FetchComments{PostID: post.ID}}
}

func handleCommentsDone(s Session, a Action) (Session, []Effect) {
	act := a.(CommentsDone)
	if s.Viewer.Status != ViewerReady || act.PostID != s.Viewer.PostID {
		return s, nil
	}
	s.Viewer.CommentsLoading = false
	if act.Err != nil {
		s.Viewer.Comments = nil
		return s, nil
	}
	comments := make([]domain.Comment, 0, len(act.Comments))
	for _, c := range act.Comments {
		if strings.TrimSpace(c.Body) == "" {
			continue
		}
		comments = append(comments, c)
	}
	s.Viewer.Comments = comments
	return s, nil
}

func handleClosePost(s Session, _ Action) (Session, []Effect) {
	if !s.Viewer.Open() {
		return s, nil
	}
	s.Viewer = Viewer{}
	s.Nav, _ = s.Nav.Apply(nav.Patch{}.WithMode(nav.ModeList), false)
	return s, []Effect{StopMedia{}}
}

// --- Navigation ---

func handleGoHome(s Session, _ Action) (Session, []Effect) {
	var effects []Effect
	if s.Viewer.Open() {
		effects = append(effects, StopMedia{})
	}
	if s.Busy {
		s.superseded = true
		s.restore = false
	}
	home := nav.Patch{}.WithTags("").WithPage(0).WithMode(nav.ModeNone).WithPostID("")
	s.Nav, _ = s.Nav.Apply(home, true)
	s.Viewer = Viewer{}
	s.Posts = nil
	s.Err = nil
	s.InputErr = nil
	s.Searched = false
	s.shown = query{}
	s.PageInput = s.pageLabel()
	return s, effects
}

func handleBack(s Session, _ Action) (Session, []Effect) {
	next, ok := s.Nav.Back()
	if !ok {
		return s, nil
	}
	s.Nav = next
	return s.rebuild()
}

func handleForward(s Session, _ Action) (Session, []Effect) {
	next, ok := s.Nav.Forward()
	if !ok {
		return s, nil
	}
	s.Nav = next
	return s.rebuild()
}

func handleRestore(s Session, _ Action) (Session, []Effect) {
	return s.rebuild()
}

// rebuild reconstructs the viewer and result list from the location alone.
// With a search in flight the rebuild waits for it to land and discards
// its result.
func (s Session) rebuild() (Session, []Effect) {
	if s.Busy {
		s.superseded = true
		s.restore = true
		return s, nil
	}

	st := s.Nav.State()
	s.PageInput = s.pageLabel()
	var effects []Effect

	if st.Viewing() {
		if !s.Viewer.Open() || s.Viewer.PostID != st.PostID {
			post, ok := findPost(s.Posts, st.PostID)
			if !ok {
				post = domain.Post{ID: st.PostID}
			}
			var open []Effect
			s, open = s.openViewer(post)
			effects = append(effects, open...)
		}
	} else if s.Viewer.Open() {
		s.Viewer = Viewer{}
		effects = append(effects, StopMedia{})
	}

	if st.IsHome() {
		s.Posts = nil
		s.Err = nil
		s.Searched = false
		s.shown = query{}
		return s, effects
	}

	want := query{Tags: st.Tags, Page: st.Page}
	if s.Searched && s.Err == nil && s.shown == want {
		return s, effects
	}
	var fetch []Effect
	s, fetch = s.search(st.Tags, st.Page, false, false)
	return s, append(effects, fetch...)
}
