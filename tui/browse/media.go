package browse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/CrestNiraj12/termbooru/domain"
)

var errNoPlayer = errors.New("no media player configured")

// maxFrames bounds how many GIF frames are kept per preview.
const maxFrames = 8

// ImageFetcher downloads image bytes for previews.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type httpImages struct{}

func (httpImages) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("preview status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8*1024*1024))
}

func gridKey(url string) string   { return "grid|" + url }
func viewerKey(url string) string { return "viewer|" + url }

type previewTarget struct {
	URL      string
	Fallback string // Tried statically when URL fails
	Animated bool
}

// viewerTarget picks what the viewer renders: the animated file for gifs,
// otherwise the sample, falling back to the thumbnail for videos.
func viewerTarget(p domain.Post) previewTarget {
	switch p.Kind() {
	case domain.MediaGIF:
		return previewTarget{URL: p.FileURL, Fallback: firstNonEmpty(p.SampleURL, p.PreviewURL), Animated: true}
	case domain.MediaVideo:
		return previewTarget{URL: p.PreviewURL}
	}
	url := firstNonEmpty(p.SampleURL, p.FileURL, p.PreviewURL)
	fallback := p.PreviewURL
	if fallback == url {
		fallback = ""
	}
	return previewTarget{URL: url, Fallback: fallback}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ensureMediaPreviewCmd schedules previews for the visible grid window and
// the open post.
func (m *Model) ensureMediaPreviewCmd() tea.Cmd {
	var cmds []tea.Cmd
	want := func(key string, target previewTarget, w, h int) {
		if target.URL == "" {
			return
		}
		if _, ok := m.mediaPreview[key]; ok || m.mediaLoading[key] {
			return
		}
		m.mediaLoading[key] = true
		cmds = append(cmds, fetchMediaPreview(m.images, target, key, w, h))
	}

	if v := m.sess.Viewer; v.Open() && v.Post.ID != "" {
		target := viewerTarget(v.Post)
		want(viewerKey(target.URL), target, viewerCols, viewerRows)
	} else {
		posts := m.visiblePosts()
		from, to := m.visibleRange(len(posts))
		for _, i := range posts[from:to] {
			p := m.sess.Posts[i]
			want(gridKey(p.PreviewURL), previewTarget{URL: p.PreviewURL}, thumbCols, thumbRows)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func fetchMediaPreview(images ImageFetcher, target previewTarget, key string, w, h int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		preview, frames, err := loadPreview(ctx, images, target.URL, w, h, target.Animated)
		if err != nil && target.Fallback != "" {
			var ferr error
			if preview, frames, ferr = loadPreview(ctx, images, target.Fallback, w, h, false); ferr == nil {
				err = nil
			}
		}
		if err != nil {
			return MediaPreviewLoadedMsg{Key: key, Err: err}
		}
		return MediaPreviewLoadedMsg{Key: key, Preview: preview, Frames: frames}
	}
}

func loadPreview(ctx context.Context, images ImageFetcher, url string, w, h int, animated bool) (string, []string, error) {
	data, err := images.Fetch(ctx, url)
	if err != nil {
		return "", nil, err
	}
	if animated {
		if frames, err := renderANSIFramesFromGIF(data, w, h, maxFrames); err == nil {
			return frames[0], frames, nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	return renderANSIThumbnail(img, w, h), nil, nil
}

func (m *Model) advanceMediaFrames() {
	for key, frames := range m.mediaFrames {
		if len(frames) <= 1 {
			continue
		}
		m.mediaFrameIndex[key] = (m.mediaFrameIndex[key] + 1) % len(frames)
		m.mediaPreview[key] = frames[m.mediaFrameIndex[key]]
	}
}

func renderANSIFramesFromGIF(data []byte, w, h, limit int) ([]string, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) <= 1 {
		return nil, fmt.Errorf("not animated")
	}
	n := min(len(g.Image), limit)
	// Frames may be partial rectangles; composite onto a full canvas.
	canvas := image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	frames := make([]string, 0, n)
	for i := range n {
		draw.Draw(canvas, g.Image[i].Bounds(), g.Image[i], g.Image[i].Bounds().Min, draw.Over)
		frames = append(frames, renderANSIThumbnail(canvas, w, h))
	}
	return frames, nil
}

// renderANSIThumbnail scales img to w×h and paints each pixel as two
// background-colored cells.
func renderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	w, h = max(w, 4), max(h, 2)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(dst.At(x, y)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// placeholder fills a thumbnail-sized box with a centered label.
func placeholder(label string, w, h int) string {
	cols := w * 2
	label = ansi.Truncate(label, cols, "")
	pad := (cols - ansi.StringWidth(label)) / 2
	blank := strings.Repeat(" ", cols)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = blank
	}
	lines[h/2] = strings.Repeat(" ", pad) + label + strings.Repeat(" ", cols-pad-ansi.StringWidth(label))
	return strings.Join(lines, "\n")
}
