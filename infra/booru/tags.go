package booru

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/logging"
	"github.com/CrestNiraj12/termbooru/tagdict"
)

// ShardSource returns the raw bytes of tag shard n (1-based). A shard that
// does not exist is reported as domain.ErrNotFound.
type ShardSource interface {
	Shard(ctx context.Context, n int) ([]byte, error)
}

func shardName(n int) string { return fmt.Sprintf("tags_%d.json", n) }

// NewShardSource picks an HTTP or directory source depending on base.
func NewShardSource(base string, client *Client) ShardSource {
	lower := strings.ToLower(base)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return HTTPShards{client: client, base: strings.TrimRight(base, "/") + "/"}
	}
	return DirShards{Dir: base}
}

// HTTPShards fetches shards relative to a base URL.
type HTTPShards struct {
	client *Client
	base   string
}

func (h HTTPShards) Shard(ctx context.Context, n int) ([]byte, error) {
	return h.client.Fetch(ctx, h.base+shardName(n))
}

// DirShards reads shards from a local directory.
type DirShards struct {
	Dir string
}

func (d DirShards) Shard(_ context.Context, n int) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, shardName(n)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", shardName(n), domain.ErrNotFound)
	}
	return data, err
}

// tagService implements app.TagService on top of a ShardSource.
type tagService struct {
	source    ShardSource
	maxShards int
}

// NewTagService loads up to maxShards shards from source.
func NewTagService(source ShardSource, maxShards int) *tagService {
	return &tagService{source: source, maxShards: max(maxShards, 1)}
}

// Dictionary fetches shards 1..maxShards in order. Loading stops at the
// first missing or invalid shard and keeps what came before; if shard 1
// itself fails the dictionary is empty and the error is returned.
func (s *tagService) Dictionary(ctx context.Context) (tagdict.Dictionary, error) {
	log := logging.Get()
	var all []domain.Tag
	for n := 1; n <= s.maxShards; n++ {
		tags, err := s.load(ctx, n)
		if err == nil {
			log.Debug().Int("shard", n).Int("tags", len(tags)).Msg("tag shard loaded")
			all = append(all, tags...)
			continue
		}
		if n == 1 {
			log.Warn().Err(err).Msg("base tag shard unavailable, autocomplete disabled")
			return tagdict.Dictionary{}, fmt.Errorf("loading tags: %w", err)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Int("shard", n).Msg("tag shard invalid, keeping earlier shards")
		}
		break
	}
	dict := tagdict.Build(all)
	log.Info().Int("tags", dict.Len()).Msg("tag dictionary ready")
	return dict, nil
}

func (s *tagService) load(ctx context.Context, n int) ([]domain.Tag, error) {
	data, err := s.source.Shard(ctx, n)
	if err != nil {
		return nil, err
	}
	return tagdict.ParseShard(data)
}
