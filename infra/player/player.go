// Package player launches media outside the terminal: an external player
// for video and gif files, and the system browser for post pages.
package player

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/CrestNiraj12/termbooru/infra/logging"
)

// ErrUnsafeURL is returned for anything but absolute http(s) URLs.
var ErrUnsafeURL = errors.New("refusing to open non-http url")

// Exec plays media with an external command such as "mpv". At most one
// process runs; Play replaces it and Stop kills it.
type Exec struct {
	args []string

	mu   sync.Mutex
	proc *exec.Cmd
	done chan struct{}
}

// NewExec parses command into program and arguments.
func NewExec(command string) *Exec {
	return &Exec{args: strings.Fields(command)}
}

// Play stops anything already playing and starts the player on rawURL.
func (p *Exec) Play(rawURL string) error {
	if !IsSafeURL(rawURL) {
		return ErrUnsafeURL
	}
	if len(p.args) == 0 {
		return fmt.Errorf("no media player configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.stopLocked(); err != nil {
		return err
	}

	cmd := exec.Command(p.args[0], append(p.args[1:], rawURL)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", p.args[0], err)
	}
	done := make(chan struct{})
	p.proc, p.done = cmd, done

	go func() {
		err := cmd.Wait()
		// done closes before mu is taken; stopLocked waits on it under mu.
		close(done)
		logging.Get().Debug().Err(err).Int("pid", cmd.Process.Pid).Msg("player exited")
		p.mu.Lock()
		if p.proc == cmd {
			p.proc, p.done = nil, nil
		}
		p.mu.Unlock()
	}()
	logging.Get().Info().Str("player", p.args[0]).Int("pid", cmd.Process.Pid).Msg("player started")
	return nil
}

// Stop kills the running player, if any, and waits for it to exit.
func (p *Exec) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *Exec) stopLocked() error {
	cmd, done := p.proc, p.done
	if cmd == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stopping player: %w", err)
	}
	<-done
	p.proc, p.done = nil, nil
	return nil
}

// Playing reports whether a player process is running.
func (p *Exec) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.proc != nil
}

// IsSafeURL accepts only absolute http(s) URLs.
func IsSafeURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}

// OpenBrowser hands rawURL to the platform opener.
func OpenBrowser(rawURL string) error {
	if !IsSafeURL(rawURL) {
		return ErrUnsafeURL
	}
	name := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	}
	return exec.Command(name, rawURL).Start()
}
