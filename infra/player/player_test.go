package player

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSafeURL(t *testing.T) {
	assert.True(t, IsSafeURL("https://img.test/a.mp4"))
	assert.True(t, IsSafeURL(" http://img.test/a.gif "))
	assert.False(t, IsSafeURL("file:///etc/passwd"))
	assert.False(t, IsSafeURL("javascript:alert(1)"))
	assert.False(t, IsSafeURL("/relative.mp4"))
}

func TestExec_PlayStop(t *testing.T) {
	p := &Exec{args: []string{"sh", "-c", "sleep 30"}}

	require.NoError(t, p.Play("https://img.test/a.webm"))
	assert.True(t, p.Playing())

	require.NoError(t, p.Play("https://img.test/b.webm"), "replacing a running player")
	assert.True(t, p.Playing())

	require.NoError(t, p.Stop())
	assert.False(t, p.Playing())
	require.NoError(t, p.Stop(), "stopping twice is a no-op")
}

func TestExec_ConcurrentPlayLeavesNoStrays(t *testing.T) {
	dir := t.TempDir()
	// Each player records its pid in dir before becoming sleep.
	p := &Exec{args: []string{"sh", "-c", `echo $$ > "$0/$$"; exec sleep 30`, dir}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, p.Play("https://img.test/"+strconv.Itoa(i)+".webm"))
		}(i)
	}
	wg.Wait()
	require.NoError(t, p.Stop())
	assert.False(t, p.Playing())

	time.Sleep(200 * time.Millisecond)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		text := strings.TrimSpace(string(raw))
		if text == "" {
			continue // killed between creating and writing the file
		}
		pid, err := strconv.Atoi(text)
		require.NoError(t, err)
		if syscall.Kill(pid, 0) == nil {
			_ = syscall.Kill(pid, syscall.SIGKILL)
			t.Errorf("player %d still running after Stop", pid)
		}
	}
}

func TestExec_ExitedProcessClearsItself(t *testing.T) {
	p := &Exec{args: []string{"true"}}
	require.NoError(t, p.Play("https://img.test/a.webm"))
	assert.Eventually(t, func() bool { return !p.Playing() }, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, p.Stop())
}

func TestExec_Rejects(t *testing.T) {
	assert.ErrorIs(t, NewExec("mpv").Play("ftp://x/y"), ErrUnsafeURL)
	assert.Error(t, NewExec("  ").Play("https://img.test/a.mp4"))
	assert.ErrorIs(t, OpenBrowser("file:///tmp/x"), ErrUnsafeURL)
}
