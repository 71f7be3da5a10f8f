package booru

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/termbooru/domain"
)

// commentService implements app.CommentService. The comment endpoint only
// speaks XML.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the dapi endpoint.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type xmlComments struct {
	Comments []xmlComment `xml:"comment"`
}

type xmlComment struct {
	Creator string `xml:"creator,attr"`
	Body    string `xml:"body,attr"`
}

func (s *commentService) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	params := url.Values{}
	params.Set("s", "comment")
	params.Set("q", "index")
	params.Set("post_id", strings.TrimSpace(postID))

	data, err := s.client.API(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	comments, err := parseComments(data)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	return comments, nil
}

func parseComments(data []byte) ([]domain.Comment, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var doc xmlComments
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	out := make([]domain.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		body := strings.TrimSpace(c.Body)
		if body == "" {
			continue
		}
		out = append(out, domain.Comment{Author: strings.TrimSpace(c.Creator), Body: body})
	}
	return out, nil
}
