package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	APIURL          string        // e.g. "https://api.rule34.xxx/index.php"
	TagsBase        string        // Directory or http(s) URL holding tags_<N>.json
	TagShards       int           // Upper bound on shard index
	PageSize        int           // Posts per page
	SuggestMinChars int           // Active token length before suggesting
	SuggestMaxItems int           // Suggestions shown at once
	HTTPTimeout     time.Duration // Per-request timeout
	UserAgent       string
	Player          string // External media player command
	UIStatePath     string
	CredentialsPath string
	UserID          string
	APIKey          string
	LogPath         string // "off" disables logging
	LogLevel        string
}

// fileConfig is the optional YAML file. Zero values mean "not set".
type fileConfig struct {
	API         string `yaml:"api"`
	TagsBase    string `yaml:"tags_base"`
	TagShards   int    `yaml:"tag_shards"`
	PageSize    int    `yaml:"page_size"`
	SuggestMin  int    `yaml:"suggest_min_chars"`
	SuggestMax  int    `yaml:"suggest_max_items"`
	HTTPTimeout string `yaml:"http_timeout"`
	UserAgent   string `yaml:"user_agent"`
	Player      string `yaml:"player"`
	UIState     string `yaml:"ui_state"`
	Credentials string `yaml:"credentials"`
	UserID      string `yaml:"user_id"`
	APIKey      string `yaml:"api_key"`
	Log         string `yaml:"log"`
	LogLevel    string `yaml:"log_level"`
}

const (
	DefaultAPIURL      = "https://api.rule34.xxx/index.php"
	DefaultTagShards   = 20
	DefaultPageSize    = 42
	DefaultSuggestMin  = 2
	DefaultSuggestMax  = 15
	DefaultHTTPTimeout = 20 * time.Second
	DefaultUserAgent   = "termbooru/1.0"
	DefaultPlayer      = "mpv"
)

// Load reads configuration from the optional YAML file, then environment
// variables, which take precedence.
//
//	TERMBOORU_CONFIG                       YAML file (default: ~/.config/termbooru/config.yaml)
//	TERMBOORU_API                          API endpoint, https only
//	TERMBOORU_TAGS_BASE                    tag shard directory or URL (default: ~/.config/termbooru/tags)
//	TERMBOORU_TAG_SHARDS                   highest shard index tried (default: 20)
//	TERMBOORU_PAGE_SIZE                    posts per page (default: 42)
//	TERMBOORU_SUGGEST_MIN                  autocomplete min chars (default: 2)
//	TERMBOORU_SUGGEST_MAX                  autocomplete max items (default: 15)
//	TERMBOORU_HTTP_TIMEOUT                 request timeout, Go duration (default: 20s)
//	TERMBOORU_USER_AGENT                   User-Agent header
//	TERMBOORU_PLAYER                       external media player (default: mpv)
//	TERMBOORU_UI_STATE                     UI state file
//	TERMBOORU_CREDENTIALS                  credentials file
//	TERMBOORU_USER_ID / TERMBOORU_API_KEY  API credentials
//	TERMBOORU_LOG                          log file, or "off"
//	TERMBOORU_LOG_LEVEL                    zerolog level (default: info)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "termbooru")

	cfgPath := envOr("TERMBOORU_CONFIG", filepath.Join(dir, "config.yaml"))
	fc, err := readFile(cfgPath)
	if err != nil {
		return Config{}, err
	}

	api := envOr("TERMBOORU_API", firstNonEmpty(fc.API, DefaultAPIURL))
	api, err = normalizeAPI(api)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:          api,
		TagsBase:        envOr("TERMBOORU_TAGS_BASE", firstNonEmpty(fc.TagsBase, filepath.Join(dir, "tags"))),
		UserAgent:       envOr("TERMBOORU_USER_AGENT", firstNonEmpty(fc.UserAgent, DefaultUserAgent)),
		Player:          envOr("TERMBOORU_PLAYER", firstNonEmpty(fc.Player, DefaultPlayer)),
		UIStatePath:     envOr("TERMBOORU_UI_STATE", firstNonEmpty(fc.UIState, filepath.Join(dir, "ui_state.json"))),
		CredentialsPath: envOr("TERMBOORU_CREDENTIALS", firstNonEmpty(fc.Credentials, filepath.Join(dir, "credentials"))),
		UserID:          envOr("TERMBOORU_USER_ID", fc.UserID),
		APIKey:          envOr("TERMBOORU_API_KEY", fc.APIKey),
		LogPath:         envOr("TERMBOORU_LOG", firstNonEmpty(fc.Log, filepath.Join(dir, "termbooru.log"))),
		LogLevel:        envOr("TERMBOORU_LOG_LEVEL", firstNonEmpty(fc.LogLevel, "info")),
	}

	ints := []struct {
		env  string
		file int
		def  int
		dst  *int
	}{
		{"TERMBOORU_TAG_SHARDS", fc.TagShards, DefaultTagShards, &cfg.TagShards},
		{"TERMBOORU_PAGE_SIZE", fc.PageSize, DefaultPageSize, &cfg.PageSize},
		{"TERMBOORU_SUGGEST_MIN", fc.SuggestMin, DefaultSuggestMin, &cfg.SuggestMinChars},
		{"TERMBOORU_SUGGEST_MAX", fc.SuggestMax, DefaultSuggestMax, &cfg.SuggestMaxItems},
	}
	for _, f := range ints {
		v, err := positiveInt(f.env, f.file, f.def)
		if err != nil {
			return Config{}, err
		}
		*f.dst = v
	}

	timeout := envOr("TERMBOORU_HTTP_TIMEOUT", fc.HTTPTimeout)
	cfg.HTTPTimeout = DefaultHTTPTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid TERMBOORU_HTTP_TIMEOUT: %q", timeout)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

func normalizeAPI(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid TERMBOORU_API: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid TERMBOORU_API: only https is allowed")
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

func positiveInt(env string, fromFile, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		if fromFile > 0 {
			return fromFile, nil
		}
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", env)
	}
	return n, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
