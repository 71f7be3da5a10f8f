package browse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/tagdict"
)

type stubPosts struct {
	pages  map[string][]domain.Post // keyed by "tags|page"
	detail map[string]domain.Post
	err    error
}

func (s stubPosts) Search(_ context.Context, tags string, page, _ int) ([]domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[fmt.Sprintf("%s|%d", tags, page)], nil
}

func (s stubPosts) PostByID(_ context.Context, id string) (domain.Post, error) {
	p, ok := s.detail[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	return p, nil
}

type stubComments struct {
	byPost map[string][]domain.Comment
	err    error
}

func (s stubComments) Comments(_ context.Context, postID string) ([]domain.Comment, error) {
	return s.byPost[postID], s.err
}

type stubTags struct{ dict tagdict.Dictionary }

func (s stubTags) Dictionary(context.Context) (tagdict.Dictionary, error) { return s.dict, nil }

type stubPlayer struct {
	mu      sync.Mutex
	played  []string
	stopped int
}

func (p *stubPlayer) Play(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, url)
	return nil
}

func (p *stubPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped++
	return nil
}

// stubImages serves a tiny PNG for every URL except those in fail.
type stubImages struct{ fail map[string]bool }

func (s stubImages) Fetch(_ context.Context, url string) ([]byte, error) {
	if s.fail[url] {
		return nil, errors.New("boom")
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func post(id string) domain.Post {
	return domain.Post{
		ID:         id,
		PreviewURL: "https://img.example/thumb/" + id + ".jpg",
		Width:      640,
		Height:     480,
	}
}

func detailedPost(id, tags string) domain.Post {
	p := post(id)
	p.FileURL = "https://img.example/full/" + id + ".png"
	p.Tags = tags
	p.Score = 7
	return p
}

// collect runs cmd and every command nested in batches, returning the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds the messages produced by cmd back into the model until no
// more arrive.
func settle(m Model, cmd tea.Cmd) Model {
	for range 10 {
		msgs := collect(cmd)
		if len(msgs) == 0 {
			return m
		}
		var cmds []tea.Cmd
		for _, msg := range msgs {
			var next tea.Cmd
			m, next = m.Update(msg)
			cmds = append(cmds, next)
		}
		cmd = tea.Batch(cmds...)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and discards the resulting command.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}
