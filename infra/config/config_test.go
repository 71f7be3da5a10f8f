package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every path-valued setting into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TERMBOORU_CONFIG", filepath.Join(dir, "config.yaml"))
	for _, k := range []string{
		"TERMBOORU_API", "TERMBOORU_TAGS_BASE", "TERMBOORU_TAG_SHARDS", "TERMBOORU_PAGE_SIZE",
		"TERMBOORU_SUGGEST_MIN", "TERMBOORU_SUGGEST_MAX", "TERMBOORU_HTTP_TIMEOUT",
		"TERMBOORU_USER_AGENT", "TERMBOORU_PLAYER", "TERMBOORU_UI_STATE", "TERMBOORU_CREDENTIALS",
		"TERMBOORU_USER_ID", "TERMBOORU_API_KEY", "TERMBOORU_LOG", "TERMBOORU_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTagShards, cfg.TagShards)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultSuggestMin, cfg.SuggestMinChars)
	assert.Equal(t, DefaultSuggestMax, cfg.SuggestMaxItems)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, filepath.Join(dir, ".config", "termbooru", "tags"), cfg.TagsBase)
	assert.Equal(t, filepath.Join(dir, ".config", "termbooru", "ui_state.json"), cfg.UIStatePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ParsesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TERMBOORU_API", "https://booru.example/index.php?x=1")
	t.Setenv("TERMBOORU_TAG_SHARDS", "5")
	t.Setenv("TERMBOORU_HTTP_TIMEOUT", "3s")
	t.Setenv("TERMBOORU_USER_ID", "7")
	t.Setenv("TERMBOORU_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://booru.example/index.php", cfg.APIURL)
	assert.Equal(t, 5, cfg.TagShards)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "7", cfg.UserID)
	assert.Equal(t, "k", cfg.APIKey)
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := isolate(t)
	yaml := "api: https://file.example/index.php\npage_size: 10\nplayer: vlc\nlog: off\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("TERMBOORU_PLAYER", "mpv --loop")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example/index.php", cfg.APIURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "mpv --loop", cfg.Player)
	assert.Equal(t, "off", cfg.LogPath)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-https api", "TERMBOORU_API", "http://insecure.local"},
		{"relative api", "TERMBOORU_API", "index.php"},
		{"zero shards", "TERMBOORU_TAG_SHARDS", "0"},
		{"bad page size", "TERMBOORU_PAGE_SIZE", "many"},
		{"bad timeout", "TERMBOORU_HTTP_TIMEOUT", "soon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [oops"), 0o600))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("TERMBOORU_DOTENV_PROBE=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(".env.local", []byte("TERMBOORU_DOTENV_PROBE=from-local\n"), 0o600))
	t.Setenv("TERMBOORU_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("TERMBOORU_DOTENV_PROBE"))

	loaded := LoadDotEnv()
	assert.Equal(t, []string{".env.local", ".env"}, loaded)
	assert.Equal(t, "from-local", os.Getenv("TERMBOORU_DOTENV_PROBE"))
}

func TestUIState_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_state.json")

	st, err := LoadUIState(path)
	require.NoError(t, err, "missing state should not error")
	assert.Equal(t, UIState{}, st)

	want := UIState{SidebarHidden: true}
	require.NoError(t, SaveUIState(path, want))
	got, err := LoadUIState(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))
	_, err = LoadUIState(path)
	assert.Error(t, err)
}
