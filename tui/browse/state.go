package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/termbooru/app"
	"github.com/CrestNiraj12/termbooru/session"
	"github.com/CrestNiraj12/termbooru/tagdict"
	"github.com/CrestNiraj12/termbooru/tui/common"
)

const (
	visibleTagLimit = 10
	thumbCols       = 10 // Thumbnail pixels across; each pixel is two cells wide
	thumbRows       = 5
	viewerCols      = 32
	viewerRows      = 14
	sidebarWidth    = 26
)

// DictionaryLoadedMsg carries the autocomplete dictionary.
type DictionaryLoadedMsg struct {
	Dict tagdict.Dictionary
	Err  error
}

// MediaPreviewLoadedMsg carries a rendered ANSI preview.
type MediaPreviewLoadedMsg struct {
	Key     string
	Preview string
	Frames  []string
	Err     error
}

// ExternalResultMsg reports the outcome of handing media to another program.
type ExternalResultMsg struct {
	Action string
	Err    error
}

// PrefsChangedMsg asks the root to persist UI preferences.
type PrefsChangedMsg struct {
	SidebarHidden bool
}

// EditQueryMsg asks the root to open the query editor.
type EditQueryMsg struct {
	Query  string
	Inline bool
}

// ApplyQueryMsg runs a query produced outside the search box.
type ApplyQueryMsg struct {
	Query string
}

// Services are the backends the browser talks to.
type Services struct {
	Posts    app.PostService
	Comments app.CommentService
	Tags     app.TagService
	Player   app.MediaPlayer
	Images   ImageFetcher // nil uses plain HTTP
}

// Options configure a new browser.
type Options struct {
	Location      string
	PageSize      int
	Suggest       tagdict.Options
	SidebarHidden bool
}

// --- Model ---

type modelServices struct {
	posts    app.PostService
	comments app.CommentService
	tags     app.TagService
	player   app.MediaPlayer
	images   ImageFetcher
}

type uiState struct {
	keys          common.KeyMap
	spinner       spinner.Model
	help          help.Model
	width         int
	height        int
	showAllHints  bool
	sidebarHidden bool
	status        string
	cursor        int // Index into the renderable posts
	startRow      int // First visible grid row
}

type searchState struct {
	input        textinput.Model
	focused      bool
	pageInput    textinput.Model
	pageEditing  bool
	suggestOpts  tagdict.Options
	suggestOpen  bool
	suggestIndex int // -1 when nothing is highlighted
}

type dictState struct {
	dict        tagdict.Dictionary
	dictLoading bool
	dictErr     error
}

type detailState struct {
	tagCursor   int
	showAllTags bool
	commentView viewport.Model
	viewingID   string
}

type mediaState struct {
	mediaPreview    map[string]string
	mediaFrames     map[string][]string
	mediaFrameIndex map[string]int
	mediaLoading    map[string]bool
}

// Model is the search grid plus the post viewer.
type Model struct {
	modelServices
	sess    session.Session
	pending []session.Effect
	uiState
	searchState
	dictState
	detailState
	mediaState
}

// New creates the browser positioned at opts.Location. The location is
// restored on Init.
func New(svc Services, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	in := textinput.New()
	in.Prompt = "tags › "
	in.Placeholder = "type tags, / to focus"
	in.CharLimit = 1024

	page := textinput.New()
	page.Prompt = "page › "
	page.CharLimit = 9

	suggest := opts.Suggest
	if suggest.MinChars <= 0 {
		suggest.MinChars = tagdict.DefaultMinChars
	}
	if suggest.MaxItems <= 0 {
		suggest.MaxItems = tagdict.DefaultMaxItems
	}

	images := svc.Images
	if images == nil {
		images = httpImages{}
	}

	sess := session.New(opts.Location, opts.PageSize)
	sess, pending := sess.Dispatch(session.Restore{})
	in.SetValue(sess.State().Tags)

	return Model{
		modelServices: modelServices{
			posts:    svc.Posts,
			comments: svc.Comments,
			tags:     svc.Tags,
			player:   svc.Player,
			images:   images,
		},
		sess:    sess,
		pending: pending,
		uiState: uiState{
			keys:          common.DefaultKeyMap(),
			spinner:       s,
			help:          help.New(),
			sidebarHidden: opts.SidebarHidden,
		},
		searchState: searchState{
			input:        in,
			pageInput:    page,
			suggestOpts:  suggest,
			suggestIndex: -1,
		},
		dictState: dictState{
			dictLoading: svc.Tags != nil,
		},
		detailState: detailState{
			commentView: viewport.New(60, 8),
			viewingID:   sess.Viewer.PostID,
		},
		mediaState: mediaState{
			mediaPreview:    make(map[string]string),
			mediaFrames:     make(map[string][]string),
			mediaFrameIndex: make(map[string]int),
			mediaLoading:    make(map[string]bool),
		},
	}
}

// Init loads the dictionary and runs the restored location.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadDictionary(),
		m.runEffects(m.pending),
		m.spinner.Tick,
	)
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Location is the current location string.
func (m Model) Location() string { return m.sess.Location() }

// Session exposes the browsing state.
func (m Model) Session() session.Session { return m.sess }

// CapturesKeys reports whether plain letter keys belong to the browser
// (a text box is focused, a dialog is open or the viewer is showing).
func (m Model) CapturesKeys() bool {
	return m.focused || m.pageEditing || m.showAllHints || m.sess.Viewer.Open()
}

// SidebarHidden reports the sidebar preference.
func (m Model) SidebarHidden() bool { return m.sidebarHidden }

// visiblePosts are the posts the grid can draw.
func (m Model) visiblePosts() []int {
	idx := make([]int, 0, len(m.sess.Posts))
	for i, p := range m.sess.Posts {
		if p.Renderable() {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m Model) query() string {
	return strings.TrimSpace(m.sess.State().Tags)
}
