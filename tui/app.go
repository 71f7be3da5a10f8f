package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/app"
	"github.com/CrestNiraj12/termbooru/infra/config"
	"github.com/CrestNiraj12/termbooru/infra/logging"
	"github.com/CrestNiraj12/termbooru/tagdict"
	"github.com/CrestNiraj12/termbooru/tui/browse"
	"github.com/CrestNiraj12/termbooru/tui/common"
	"github.com/CrestNiraj12/termbooru/tui/query"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts    app.PostService
	Comments app.CommentService
	Tags     app.TagService
	Player   app.MediaPlayer
	Editor   query.Editor
	Images   browse.ImageFetcher

	Location      string
	PageSize      int
	Suggest       tagdict.Options
	SidebarHidden bool
	UIStatePath   string // Empty disables persisting preferences
}

type activeView int

const (
	browseView activeView = iota
	queryView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	active activeView
	browse browse.Model
	query  query.Model
	keys   common.KeyMap
	status string // Transient status message
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: browseView,
		browse: browse.New(browse.Services{
			Posts:    deps.Posts,
			Comments: deps.Comments,
			Tags:     deps.Tags,
			Player:   deps.Player,
			Images:   deps.Images,
		}, browse.Options{
			Location:      deps.Location,
			PageSize:      deps.PageSize,
			Suggest:       deps.Suggest,
			SidebarHidden: deps.SidebarHidden,
		}),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the browser.
func (a App) Init() tea.Cmd {
	return a.browse.Init()
}

// Location is the browser's current location string.
func (a App) Location() string {
	return a.browse.Location()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == browseView && key.Matches(msg, a.keys.Quit) && !a.browse.CapturesKeys() {
			return a, tea.Quit
		}
		if a.active == browseView {
			a.status = ""
		}

	case browse.PrefsChangedMsg:
		if a.deps.UIStatePath == "" {
			return a, nil
		}
		path := a.deps.UIStatePath
		state := config.UIState{SidebarHidden: msg.SidebarHidden}
		return a, func() tea.Msg {
			if err := config.SaveUIState(path, state); err != nil {
				logging.Get().Warn().Err(err).Str("path", path).Msg("saving ui state failed")
			}
			return nil
		}

	case browse.EditQueryMsg:
		a.active = queryView
		a.status = ""
		if msg.Inline {
			a.query = query.NewInline(msg.Query)
		} else {
			a.query = query.NewEditor(a.deps.Editor, msg.Query)
		}
		return a, a.query.Init()

	case query.DoneMsg:
		a.active = browseView
		switch {
		case msg.Err != nil:
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		case msg.Cancelled:
			a.status = "Query unchanged."
			return a, nil
		}
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(browse.ApplyQueryMsg{Query: msg.Query})
		return a, cmd

	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		a.browse, cmd = a.browse.Update(msg)
		if a.active == queryView {
			var qcmd tea.Cmd
			a.query, qcmd = a.query.Update(msg)
			cmd = tea.Batch(cmd, qcmd)
		}
		return a, cmd
	}

	switch a.active {
	case queryView:
		// Search results and previews still land while the editor is open.
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var bcmd, qcmd tea.Cmd
			a.browse, bcmd = a.browse.Update(msg)
			a.query, qcmd = a.query.Update(msg)
			return a, tea.Batch(bcmd, qcmd)
		}
		updated, cmd := a.query.Update(msg)
		a.query = updated
		return a, cmd
	default:
		updated, cmd := a.browse.Update(msg)
		a.browse = updated
		return a, cmd
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case browseView:
		s = a.browse.View()
	case queryView:
		s = a.query.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
