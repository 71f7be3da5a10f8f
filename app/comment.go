package app

import (
	"context"

	"github.com/CrestNiraj12/termbooru/domain"
)

// CommentService fetches the comments left on a post.
type CommentService interface {
	Comments(ctx context.Context, postID string) ([]domain.Comment, error)
}
