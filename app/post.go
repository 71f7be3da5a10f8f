package app

import (
	"context"

	"github.com/CrestNiraj12/termbooru/domain"
)

// PostService searches and fetches posts from an imageboard backend.
type PostService interface {
	// Search returns one page of posts matching the space-separated tags.
	// An empty result is not an error.
	Search(ctx context.Context, tags string, page, limit int) ([]domain.Post, error)

	// PostByID returns the full detail of a post, or domain.ErrNotFound.
	PostByID(ctx context.Context, id string) (domain.Post, error)
}
