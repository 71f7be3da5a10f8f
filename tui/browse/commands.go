package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/app"
	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/logging"
	"github.com/CrestNiraj12/termbooru/infra/player"
	"github.com/CrestNiraj12/termbooru/session"
)

// runEffects turns session effects into commands. Results come back as
// session actions.
func (m Model) runEffects(effects []session.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		switch e := e.(type) {
		case session.FetchPosts:
			cmds = append(cmds, fetchPosts(m.posts, e))
		case session.FetchPost:
			cmds = append(cmds, fetchPost(m.posts, e.ID))
		case session.FetchComments:
			cmds = append(cmds, fetchComments(m.comments, e.PostID))
		case session.StopMedia:
			cmds = append(cmds, stopMedia(m.player))
		}
	}
	return tea.Batch(cmds...)
}

func fetchPosts(posts app.PostService, req session.FetchPosts) tea.Cmd {
	return func() tea.Msg {
		found, err := posts.Search(context.Background(), req.Tags, req.Page, req.Limit)
		if err != nil {
			logging.Get().Warn().Err(err).Str("tags", req.Tags).Int("page", req.Page).Msg("search failed")
		}
		return session.SearchDone{Seq: req.Seq, Posts: found, Err: err}
	}
}

func fetchPost(posts app.PostService, id string) tea.Cmd {
	return func() tea.Msg {
		p, err := posts.PostByID(context.Background(), id)
		return session.DetailDone{ID: id, Post: p, Err: err}
	}
}

func fetchComments(comments app.CommentService, postID string) tea.Cmd {
	if comments == nil {
		return func() tea.Msg { return session.CommentsDone{PostID: postID} }
	}
	return func() tea.Msg {
		list, err := comments.Comments(context.Background(), postID)
		if err != nil {
			logging.Get().Warn().Err(err).Str("post_id", postID).Msg("comments unavailable")
		}
		return session.CommentsDone{PostID: postID, Comments: list, Err: err}
	}
}

func stopMedia(p app.MediaPlayer) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		if err := p.Stop(); err != nil {
			return ExternalResultMsg{Action: "stop", Err: err}
		}
		return nil
	}
}

func (m Model) loadDictionary() tea.Cmd {
	tags := m.tags
	if tags == nil {
		return nil
	}
	return func() tea.Msg {
		dict, err := tags.Dictionary(context.Background())
		return DictionaryLoadedMsg{Dict: dict, Err: err}
	}
}

func playMedia(p app.MediaPlayer, post domain.Post) tea.Cmd {
	url := mediaURL(post)
	return func() tea.Msg {
		if p == nil {
			return ExternalResultMsg{Action: "play", Err: errNoPlayer}
		}
		return ExternalResultMsg{Action: "play", Err: p.Play(url)}
	}
}

func openBrowser(post domain.Post) tea.Cmd {
	url := mediaURL(post)
	return func() tea.Msg {
		return ExternalResultMsg{Action: "open", Err: player.OpenBrowser(url)}
	}
}

func mediaURL(p domain.Post) string {
	if p.FileURL != "" {
		return p.FileURL
	}
	if p.SampleURL != "" {
		return p.SampleURL
	}
	return p.PreviewURL
}

func (m Model) emitPrefsChanged() tea.Cmd {
	hidden := m.sidebarHidden
	return func() tea.Msg {
		return PrefsChangedMsg{SidebarHidden: hidden}
	}
}
