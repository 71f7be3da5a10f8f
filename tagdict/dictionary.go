// Package tagdict holds the tag dictionary used for autocomplete and the
// pure filtering rules applied to the search input.
package tagdict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/termbooru/domain"
)

// Dictionary is the full tag list, ordered by count descending.
type Dictionary []domain.Tag

// Len returns the number of tags in the dictionary.
func (d Dictionary) Len() int { return len(d) }

type shardEntry struct {
	Name  *string         `json:"name"`
	Count json.RawMessage `json:"count"`
}

// ParseShard decodes one shard file into tags. The shard must be a JSON
// array; entries without a name or with a non-numeric count are dropped.
func ParseShard(data []byte) ([]domain.Tag, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("shard is not a JSON array: %w", domain.ErrMalformedResponse)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("parsing shard: %w", domain.ErrMalformedResponse)
	}
	tags := make([]domain.Tag, 0, len(items))
	for _, item := range items {
		var e shardEntry
		if err := json.Unmarshal(item, &e); err != nil {
			continue
		}
		tag, ok := entryTag(e)
		if !ok {
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func entryTag(e shardEntry) (domain.Tag, bool) {
	if e.Name == nil {
		return domain.Tag{}, false
	}
	name := strings.TrimSpace(*e.Name)
	if name == "" {
		return domain.Tag{}, false
	}
	count, ok := parseCount(e.Count)
	if !ok {
		return domain.Tag{}, false
	}
	return domain.Tag{
		Label: strings.ReplaceAll(name, "_", " "),
		Value: name,
		Count: count,
	}, true
}

// parseCount accepts a JSON number or a numeric string.
func parseCount(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if err != nil || math.IsNaN(f) || f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return 0, false
	}
	return int64(f), true
}

// Build concatenates tags into a dictionary sorted by count descending.
// Ties keep their load order.
func Build(tags []domain.Tag) Dictionary {
	out := make(Dictionary, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t.Value) == "" {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
