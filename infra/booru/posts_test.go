package booru

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/auth"
)

func TestPostService_Search_RequestShapeAndMapping(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.posts = `[{"id":42,"preview_url":"https://img.test/p/42.jpg","file_url":"https://img.test/f/42.webm",
		"width":"640","height":480,"tags":" cat  dog ","score":7,"owner":"bob"}]`

	svc := NewPostService(newTestClient(srv, auth.Static{UserID: "9", APIKey: "key"}))
	posts, err := svc.Search(context.Background(), "  cat   dog ", 3, 42)
	require.NoError(t, err)

	q := api.lastQuery()
	assert.Equal(t, "dapi", q.Get("page"))
	assert.Equal(t, "post", q.Get("s"))
	assert.Equal(t, "index", q.Get("q"))
	assert.Equal(t, "1", q.Get("json"))
	assert.Equal(t, "cat dog", q.Get("tags"))
	assert.Equal(t, "3", q.Get("pid"))
	assert.Equal(t, "42", q.Get("limit"))
	assert.Equal(t, "9", q.Get("user_id"))
	assert.Equal(t, "key", q.Get("api_key"))

	h := api.lastHeader()
	assert.Equal(t, "br, gzip", h.Get("Accept-Encoding"))
	assert.Equal(t, "termbooru-test", h.Get("User-Agent"))

	require.Len(t, posts, 1)
	p := posts[0]
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, 640, p.Width)
	assert.Equal(t, 480, p.Height)
	assert.Equal(t, "cat dog", p.Tags)
	assert.Equal(t, domain.MediaVideo, p.Kind())
	assert.True(t, p.HasDetail())
}

func TestPostService_Search_AnonymousOmitsCredentials(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.posts = `[]`

	posts, err := NewPostService(newTestClient(srv, nil)).Search(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.False(t, api.lastQuery().Has("user_id"))
	assert.False(t, api.lastQuery().Has("limit"))
}

func TestPostService_Search_NormalizesBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", "", 0},
		{"whitespace", " \n", 0},
		{"empty array", "[]", 0},
		{"empty object", "{}", 0},
		{"null", "null", 0},
		{"scalar", "17", 0},
		{"string", `"nothing"`, 0},
		{"single object", `{"id":"5","preview_url":"p","width":1,"height":1}`, 1},
		{"array skips junk", `[{"id":1},3,{"id":2}]`, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api, srv := newFakeAPI(t)
			api.posts = tc.body
			posts, err := NewPostService(newTestClient(srv, nil)).Search(context.Background(), "cat", 0, 42)
			require.NoError(t, err)
			assert.Len(t, posts, tc.want)
		})
	}
}

func TestPostService_Search_NonJSONIsMalformed(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.posts = `<?xml version="1.0"?><response success="false"/>`

	_, err := NewPostService(newTestClient(srv, nil)).Search(context.Background(), "cat", 0, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestPostService_Search_StatusError(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.status = http.StatusTooManyRequests
	api.posts = "slow down"

	_, err := NewPostService(newTestClient(srv, nil)).Search(context.Background(), "cat", 0, 42)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "post", se.Endpoint)
	assert.Contains(t, err.Error(), "slow down")
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestPostService_PostByID(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.posts = `[{"id":7,"file_url":"https://img.test/f/7.gif","tags":"a b","rating":"safe"}]`

	svc := NewPostService(newTestClient(srv, nil))
	p, err := svc.PostByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", api.lastQuery().Get("id"))
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "safe", p.Rating)
	assert.Equal(t, domain.MediaGIF, p.Kind())

	api.posts = `[]`
	_, err = svc.PostByID(context.Background(), "8")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.PostByID(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatusError_NotFoundUnwraps(t *testing.T) {
	err := error(&StatusError{Method: "GET", Endpoint: "file", StatusCode: http.StatusNotFound})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "API GET file returned 404", err.Error())
}

func TestStatusError_TruncatesBodyOnRuneBoundary(t *testing.T) {
	body := "x" + strings.Repeat("é", 250)
	msg := (&StatusError{Method: "GET", Endpoint: "post", StatusCode: http.StatusBadGateway, Body: body}).Error()

	assert.True(t, utf8.ValidString(msg), "error text must stay valid UTF-8")
	assert.True(t, strings.HasSuffix(msg, "x"+strings.Repeat("é", 199)+"…"), msg)
}

func TestFlexInt(t *testing.T) {
	var p apiPost
	require.NoError(t, json.Unmarshal([]byte(`{"width":"12.0","height":null,"score":"x"}`), &p))
	assert.Equal(t, flexInt(12), p.Width)
	assert.Equal(t, flexInt(0), p.Height)
	assert.Equal(t, flexInt(0), p.Score)
}
