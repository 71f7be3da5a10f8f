// Package nav keeps the browsing state and its projection onto a location
// query string, with browser-style back/forward history.
package nav

import (
	"net/url"
	"strconv"
	"strings"
)

// ViewMode is whether the result grid or the single-post viewer is showing.
type ViewMode string

const (
	ModeNone ViewMode = ""
	ModeList ViewMode = "list"
	ModeView ViewMode = "view"
)

// Query keys managed in the location. Anything else is discarded.
const (
	KeyTags = "tags"
	KeyPage = "page"
	KeyMode = "s"
	KeyID   = "id"
)

// State is the canonical browsing state. The location string is derived
// from it, never the other way round except on navigation.
type State struct {
	Tags   string
	Page   int
	Mode   ViewMode
	PostID string
}

// Viewing reports whether a post is open in the viewer.
func (s State) Viewing() bool {
	return s.Mode == ModeView && s.PostID != ""
}

// IsHome reports whether the state carries neither a query nor a mode.
func (s State) IsHome() bool {
	return s.Mode == ModeNone && s.Tags == ""
}

// NormalizeTags collapses runs of whitespace and trims the ends.
func NormalizeTags(tags string) string {
	return strings.Join(strings.Fields(tags), " ")
}

// Encode serializes the four managed keys in a fixed order. Spaces in the
// tag string become '+'; page is omitted at zero and id unless viewing.
func Encode(s State) string {
	parts := make([]string, 0, 4)
	if tags := NormalizeTags(s.Tags); tags != "" {
		parts = append(parts, KeyTags+"="+url.QueryEscape(tags))
	}
	if s.Page > 0 {
		parts = append(parts, KeyPage+"="+strconv.Itoa(s.Page))
	}
	if s.Mode != ModeNone {
		parts = append(parts, KeyMode+"="+url.QueryEscape(string(s.Mode)))
	}
	if s.Mode == ModeView && s.PostID != "" {
		parts = append(parts, KeyID+"="+url.QueryEscape(s.PostID))
	}
	return strings.Join(parts, "&")
}

// Parse reads the managed keys back from a location. It accepts a bare
// query ("tags=a+b"), a leading '?' or a full URL.
func Parse(location string) State {
	raw := strings.TrimSpace(location)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(raw)

	s := State{Tags: NormalizeTags(values.Get(KeyTags))}
	if page, err := strconv.Atoi(strings.TrimSpace(values.Get(KeyPage))); err == nil && page > 0 {
		s.Page = page
	}
	switch ViewMode(values.Get(KeyMode)) {
	case ModeList:
		s.Mode = ModeList
	case ModeView:
		s.Mode = ModeView
	}
	if s.Mode == ModeView {
		s.PostID = strings.TrimSpace(values.Get(KeyID))
	}
	return s
}

// Patch is a partial state. Nil fields leave the current value untouched.
type Patch struct {
	Tags   *string
	Page   *int
	Mode   *ViewMode
	PostID *string
}

// WithTags returns a copy of p that sets the tag string.
func (p Patch) WithTags(tags string) Patch {
	p.Tags = &tags
	return p
}

// WithPage returns a copy of p that sets the page index.
func (p Patch) WithPage(page int) Patch {
	p.Page = &page
	return p
}

// WithMode returns a copy of p that sets the view mode.
func (p Patch) WithMode(mode ViewMode) Patch {
	p.Mode = &mode
	return p
}

// WithPostID returns a copy of p that sets the viewed post id.
func (p Patch) WithPostID(id string) Patch {
	p.PostID = &id
	return p
}

// Merge applies the patch on top of s and normalizes the result.
func (p Patch) Merge(s State) State {
	if p.Tags != nil {
		s.Tags = *p.Tags
	}
	if p.Page != nil {
		s.Page = *p.Page
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.PostID != nil {
		s.PostID = *p.PostID
	}
	s.Tags = NormalizeTags(s.Tags)
	s.Page = max(s.Page, 0)
	if s.Mode != ModeView {
		s.PostID = ""
	}
	return s
}
