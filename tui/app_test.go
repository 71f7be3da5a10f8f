package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/config"
	"github.com/CrestNiraj12/termbooru/tui/browse"
	"github.com/CrestNiraj12/termbooru/tui/query"
)

type stubPosts struct{}

func (stubPosts) Search(context.Context, string, int, int) ([]domain.Post, error) {
	return []domain.Post{{ID: "1", PreviewURL: "p", Width: 1, Height: 1}}, nil
}

func (stubPosts) PostByID(context.Context, string) (domain.Post, error) {
	return domain.Post{}, domain.ErrNotFound
}

type noImages struct{}

func (noImages) Fetch(context.Context, string) ([]byte, error) { return nil, domain.ErrNotFound }

func newTestApp(location, uiState string) App {
	return NewApp(Deps{
		Posts:       stubPosts{},
		Images:      noImages{},
		Location:    location,
		UIStatePath: uiState,
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_QuitOnlyWhenBrowserIdle(t *testing.T) {
	a := newTestApp("", "")
	if _, cmd := a.Update(runes("q")); !isQuit(cmd) {
		t.Fatalf("q on the grid should quit")
	}

	a = newTestApp("tags=cat&s=view&id=1", "")
	if _, cmd := a.Update(runes("q")); isQuit(cmd) {
		t.Fatalf("q in the viewer should close it, not quit")
	}
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Fatalf("ctrl+c always quits")
	}
}

func TestApp_PrefsChangedPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_state.json")
	a := newTestApp("", path)

	_, cmd := a.Update(browse.PrefsChangedMsg{SidebarHidden: true})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	cmd()

	state, err := config.LoadUIState(path)
	if err != nil {
		t.Fatal(err)
	}
	if !state.SidebarHidden {
		t.Fatalf("sidebar preference was not saved")
	}
}

func TestApp_InlineQueryEditRoundTrip(t *testing.T) {
	a := newTestApp("", "")

	model, _ := a.Update(browse.EditQueryMsg{Query: "cat", Inline: true})
	a = model.(App)
	if a.active != queryView {
		t.Fatalf("expected query view")
	}

	model, cmd := a.Update(query.DoneMsg{Query: "cat dog"})
	a = model.(App)
	if a.active != browseView {
		t.Fatalf("expected browser after done")
	}
	if cmd == nil {
		t.Fatalf("expected search command")
	}
	if got := a.Location(); got != "tags=cat+dog&s=list" {
		t.Fatalf("unexpected location %q", got)
	}
}

func TestApp_CancelledQueryKeepsLocation(t *testing.T) {
	a := newTestApp("tags=cat&s=list", "")
	model, _ := a.Update(browse.EditQueryMsg{Query: "cat", Inline: true})
	a = model.(App)

	model, _ = a.Update(query.DoneMsg{Query: "cat", Cancelled: true})
	a = model.(App)
	if a.Location() != "tags=cat&s=list" {
		t.Fatalf("cancel should not search, got %q", a.Location())
	}
	if a.status == "" {
		t.Fatalf("expected cancel status")
	}
}
