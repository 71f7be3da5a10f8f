package booru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/logging"
)

// postService implements app.PostService.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the dapi endpoint.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

// apiPost is the subset of the post entity we care about. Numeric fields
// arrive as numbers or strings depending on the server.
type apiPost struct {
	ID         flexString `json:"id"`
	PreviewURL string     `json:"preview_url"`
	SampleURL  string     `json:"sample_url"`
	FileURL    string     `json:"file_url"`
	Width      flexInt    `json:"width"`
	Height     flexInt    `json:"height"`
	Tags       string     `json:"tags"`
	Rating     string     `json:"rating"`
	Score      flexInt    `json:"score"`
	Owner      string     `json:"owner"`
	Source     string     `json:"source"`
	Hash       string     `json:"hash"`
}

func (s *postService) Search(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
	params := url.Values{}
	params.Set("s", "post")
	params.Set("q", "index")
	params.Set("json", "1")
	params.Set("tags", strings.Join(strings.Fields(tags), " "))
	params.Set("pid", strconv.Itoa(max(page, 0)))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	data, err := s.client.API(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	posts, err := parsePosts(data)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostByID(ctx context.Context, id string) (domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Post{}, domain.ErrNotFound
	}
	params := url.Values{}
	params.Set("s", "post")
	params.Set("q", "index")
	params.Set("json", "1")
	params.Set("id", id)

	data, err := s.client.API(ctx, params)
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post %s: %w", id, err)
	}
	posts, err := parsePosts(data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post %s: %w", id, err)
	}
	if len(posts) == 0 {
		return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	return posts[0], nil
}

// parsePosts normalizes the many shapes the endpoint answers with. An empty
// body, null, {} and JSON scalars mean no results; a lone object is one
// result. Anything that is not JSON is malformed.
func parsePosts(data []byte) ([]domain.Post, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: body is not JSON", domain.ErrMalformedResponse)
	}

	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		if len(fields) == 0 {
			return nil, nil
		}
		items = []json.RawMessage{data}
	default:
		return nil, nil
	}

	posts := make([]domain.Post, 0, len(items))
	for _, raw := range items {
		var p apiPost
		if err := json.Unmarshal(raw, &p); err != nil {
			logging.Get().Debug().Err(err).Msg("skipping undecodable post")
			continue
		}
		posts = append(posts, p.toDomain())
	}
	return posts, nil
}

func (p apiPost) toDomain() domain.Post {
	return domain.Post{
		ID:         string(p.ID),
		PreviewURL: strings.TrimSpace(p.PreviewURL),
		SampleURL:  strings.TrimSpace(p.SampleURL),
		FileURL:    strings.TrimSpace(p.FileURL),
		Width:      int(p.Width),
		Height:     int(p.Height),
		Tags:       strings.Join(strings.Fields(p.Tags), " "),
		Rating:     p.Rating,
		Score:      int(p.Score),
		Owner:      p.Owner,
		Source:     p.Source,
		Hash:       p.Hash,
	}
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or numeric string. Anything else is zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}
