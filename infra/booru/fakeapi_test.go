package booru

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gorilla/mux"

	"github.com/CrestNiraj12/termbooru/infra/auth"
)

// fakeAPI is an in-process imageboard. Handlers write through
// brotli.HTTPCompressor, so responses are br/gzip encoded whenever the
// client asks for it.
type fakeAPI struct {
	mu       sync.Mutex
	posts    string // body for s=post
	comments string // body for s=comment
	shards   map[int]string
	status   int
	queries  []url.Values
	headers  []http.Header
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{shards: map[int]string{}, status: http.StatusOK}

	r := mux.NewRouter()
	r.HandleFunc("/index.php", f.serve(func(*fakeAPI) string { return f.posts })).
		Methods(http.MethodGet).Queries("page", "dapi", "s", "post")
	r.HandleFunc("/index.php", f.serve(func(*fakeAPI) string { return f.comments })).
		Methods(http.MethodGet).Queries("page", "dapi", "s", "comment")
	r.HandleFunc("/tags/tags_{n:[0-9]+}.json", func(w http.ResponseWriter, req *http.Request) {
		var n int
		_, _ = fmt.Sscanf(mux.Vars(req)["n"], "%d", &n)
		f.mu.Lock()
		body, ok := f.shards[n]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, req)
			return
		}
		write(w, req, http.StatusOK, body)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) serve(body func(*fakeAPI) string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		f.queries = append(f.queries, req.URL.Query())
		f.headers = append(f.headers, req.Header.Clone())
		status, payload := f.status, body(f)
		f.mu.Unlock()
		write(w, req, status, payload)
	}
}

func (f *fakeAPI) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeAPI) lastHeader() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.headers) == 0 {
		return nil
	}
	return f.headers[len(f.headers)-1]
}

func write(w http.ResponseWriter, req *http.Request, status int, body string) {
	out := brotli.HTTPCompressor(w, req)
	defer out.Close()
	w.WriteHeader(status)
	_, _ = out.Write([]byte(body))
}

func newTestClient(srv *httptest.Server, creds auth.CredentialProvider) *Client {
	return NewClient(srv.URL+"/index.php", creds, Options{UserAgent: "termbooru-test"})
}
