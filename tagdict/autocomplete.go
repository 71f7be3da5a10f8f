package tagdict

import (
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/termbooru/domain"
)

const (
	DefaultMinChars = 2
	DefaultMaxItems = 15
)

// Options tune when suggestions appear and how many are shown.
type Options struct {
	MinChars int
	MaxItems int
}

// DefaultOptions returns the stock suggestion limits.
func DefaultOptions() Options {
	return Options{MinChars: DefaultMinChars, MaxItems: DefaultMaxItems}
}

// ActiveToken returns the fragment after the last space of the input.
func ActiveToken(input string) string {
	return input[strings.LastIndex(input, " ")+1:]
}

// Suggest returns the dictionary entries whose canonical value starts with
// the active token, case-insensitively, in dictionary order.
func (d Dictionary) Suggest(input string, opts Options) []domain.Tag {
	token := strings.ToLower(ActiveToken(input))
	if utf8.RuneCountInString(token) < max(opts.MinChars, 1) {
		return nil
	}
	limit := opts.MaxItems
	if limit <= 0 {
		limit = DefaultMaxItems
	}
	var out []domain.Tag
	for _, t := range d {
		if !strings.HasPrefix(strings.ToLower(t.Value), token) {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Replace swaps the active token for the tag's canonical value and a
// trailing space. Everything before the active token is kept verbatim.
func Replace(input string, tag domain.Tag) string {
	before := input[:strings.LastIndex(input, " ")+1]
	return before + tag.Value + " "
}

// Highlight splits a label into the part matching token and the rest.
// When the label does not start with the token, matched is empty.
func Highlight(label, token string) (matched, rest string) {
	token = strings.ReplaceAll(token, "_", " ")
	n := utf8.RuneCountInString(token)
	if n == 0 {
		return "", label
	}
	runes := []rune(label)
	if len(runes) < n || !strings.EqualFold(string(runes[:n]), token) {
		return "", label
	}
	return string(runes[:n]), string(runes[n:])
}
