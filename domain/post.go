package domain

import (
	"path"
	"strings"
)

// Post is a single imageboard post. Search results carry the summary fields
// only; Tags and the remaining metadata arrive with the detail fetch.
type Post struct {
	ID         string
	PreviewURL string
	SampleURL  string
	FileURL    string
	Width      int
	Height     int

	Tags   string // Space-separated canonical tokens
	Rating string
	Score  int
	Owner  string
	Source string
	Hash   string
}

// HasDetail reports whether the post already carries the fields the viewer needs.
func (p Post) HasDetail() bool {
	return strings.TrimSpace(p.Tags) != "" && strings.TrimSpace(p.FileURL) != ""
}

// Renderable reports whether the post has everything a grid cell needs.
func (p Post) Renderable() bool {
	return p.ID != "" && p.PreviewURL != "" && p.Width > 0 && p.Height > 0
}

// TagList splits Tags into its tokens, dropping blanks.
func (p Post) TagList() []string {
	return strings.Fields(p.Tags)
}

// MediaKind classifies a post's file for rendering and playback.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaGIF   MediaKind = "gif"
	MediaVideo MediaKind = "video"
)

var videoExtensions = map[string]struct{}{
	"mp4": {}, "webm": {}, "mov": {}, "avi": {}, "wmv": {}, "mkv": {}, "flv": {}, "ogv": {},
}

// Kind infers the media kind from the file URL extension.
func (p Post) Kind() MediaKind {
	raw := strings.ToLower(strings.TrimSpace(p.FileURL))
	if raw == "" {
		return MediaImage
	}
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	ext := strings.TrimPrefix(path.Ext(raw), ".")
	if ext == "gif" {
		return MediaGIF
	}
	if _, ok := videoExtensions[ext]; ok {
		return MediaVideo
	}
	return MediaImage
}

// AspectClass buckets the post's aspect ratio into "tall", "wide" or "normal".
func (p Post) AspectClass() string {
	if p.Width <= 0 || p.Height <= 0 {
		return "normal"
	}
	ratio := float64(p.Width) / float64(p.Height)
	switch {
	case ratio < 0.75:
		return "tall"
	case ratio > 1.5:
		return "wide"
	default:
		return "normal"
	}
}

// Comment is a single remark left on a post.
type Comment struct {
	Author string
	Body   string
}

// AnonymousAuthor is shown for comments without a creator.
const AnonymousAuthor = "Anonymous"

// DisplayAuthor returns the author or the anonymous placeholder.
func (c Comment) DisplayAuthor() string {
	if strings.TrimSpace(c.Author) == "" {
		return AnonymousAuthor
	}
	return c.Author
}
