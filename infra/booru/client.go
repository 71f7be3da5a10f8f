// Package booru talks to the imageboard's dapi endpoint.
package booru

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/termbooru/domain"
	"github.com/CrestNiraj12/termbooru/infra/auth"
	"github.com/CrestNiraj12/termbooru/infra/logging"
)

// maxBody caps how much of a response is read.
const maxBody = 32 << 20

// maxErrorBody caps, in runes, how much of a response body an error shows.
const maxErrorBody = 200

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if r := []rune(body); len(r) > maxErrorBody {
		body = string(r[:maxErrorBody]) + "…"
	}
	if body == "" {
		return fmt.Sprintf("API %s %s returned %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Endpoint, e.StatusCode, body)
}

// Unwrap maps 404 to domain.ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Options tune the HTTP client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// Client is a thin HTTP wrapper for the dapi endpoint.
// It handles query construction, credentials and body decoding.
type Client struct {
	baseURL     string
	credentials auth.CredentialProvider
	userAgent   string
	http        *http.Client
}

// NewClient creates a client for the API at baseURL (".../index.php").
func NewClient(baseURL string, cp auth.CredentialProvider, opts Options) *Client {
	if cp == nil {
		cp = auth.Static{}
	}
	return &Client{
		baseURL:     baseURL,
		credentials: cp,
		userAgent:   opts.UserAgent,
		http:        &http.Client{Timeout: opts.Timeout},
	}
}

// API performs a GET against the dapi endpoint. page=dapi and the
// credentials, when configured, are added to params.
func (c *Client) API(ctx context.Context, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("page", "dapi")

	creds, err := c.credentials.Credentials()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if !creds.Empty() {
		q.Set("user_id", creds.UserID)
		q.Set("api_key", creds.APIKey)
	}

	endpoint := q.Get("s")
	return c.do(ctx, c.baseURL+"?"+q.Encode(), endpoint)
}

// Fetch performs a plain GET of an absolute URL, used for tag shards.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, rawURL, "file")
}

func (c *Client) do(ctx context.Context, rawURL, endpoint string) ([]byte, error) {
	requestID := logging.NewRequestID()
	log := logging.WithRequestID(requestID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept-Encoding", "br, gzip")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Dur("latency", time.Since(start)).Msg("request failed")
		return nil, fmt.Errorf("request to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	event(log, resp.StatusCode).
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("body_size", len(data)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: req.Method, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func event(log zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Debug()
	}
}

// readBody undoes the Content-Encoding the server chose.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxBody))
}
