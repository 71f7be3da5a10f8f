package app

import (
	"context"

	"github.com/CrestNiraj12/termbooru/tagdict"
)

// TagService loads the autocomplete dictionary.
// Implementations fail soft: a dictionary that cannot be loaded comes back
// empty alongside the error, so callers may ignore the error.
type TagService interface {
	Dictionary(ctx context.Context) (tagdict.Dictionary, error)
}
