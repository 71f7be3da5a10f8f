package common

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SanitizeForTerminal strips escape sequences and control characters from
// remote text so it cannot drive the terminal. Newlines and tabs survive.
func SanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r < 0xa0:
			return -1
		default:
			return r
		}
	}, s)
}

var bbTagRe = regexp.MustCompile(`(?i)\[(/?)(b|bold|i|italic|u|s|strike|small|sup|sub|ins|del)\]`)

// RenderBBCode renders the small BB-code subset used in comments as
// terminal styles. Unknown tags are left as text; unbalanced closers are
// dropped.
func RenderBBCode(text string) string {
	text = SanitizeForTerminal(text)
	var (
		out   strings.Builder
		stack []string
		last  int
	)
	flush := func(s string) {
		if s == "" {
			return
		}
		out.WriteString(styleFor(stack).Render(s))
	}
	for _, loc := range bbTagRe.FindAllStringSubmatchIndex(text, -1) {
		flush(text[last:loc[0]])
		last = loc[1]
		closing := text[loc[2]:loc[3]] == "/"
		tag := canonicalTag(strings.ToLower(text[loc[4]:loc[5]]))
		if !closing {
			stack = append(stack, tag)
			continue
		}
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == tag {
				stack = append(stack[:i], stack[i+1:]...)
				break
			}
		}
	}
	flush(text[last:])
	return out.String()
}

func canonicalTag(tag string) string {
	switch tag {
	case "bold":
		return "b"
	case "italic":
		return "i"
	case "strike", "del":
		return "s"
	case "ins":
		return "u"
	default:
		return tag
	}
}

func styleFor(stack []string) lipgloss.Style {
	st := ContentStyle
	for _, tag := range stack {
		switch tag {
		case "b":
			st = st.Bold(true)
		case "i":
			st = st.Italic(true)
		case "u":
			st = st.Underline(true)
		case "s":
			st = st.Strikethrough(true)
		case "small", "sub", "sup":
			st = st.Faint(true)
		}
	}
	return st
}

// ClampLinesToWidth cuts every line to width display cells.
func ClampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}

// ClipLines keeps at most maxLines lines.
func ClipLines(text string, maxLines int) string {
	if maxLines < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n")
}
