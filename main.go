package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termbooru/infra/auth"
	"github.com/CrestNiraj12/termbooru/infra/booru"
	"github.com/CrestNiraj12/termbooru/infra/config"
	"github.com/CrestNiraj12/termbooru/infra/editor"
	"github.com/CrestNiraj12/termbooru/infra/logging"
	"github.com/CrestNiraj12/termbooru/infra/player"
	"github.com/CrestNiraj12/termbooru/tagdict"
	"github.com/CrestNiraj12/termbooru/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

// parseCLIArgs returns the mode and, for cliRun, the starting location;
// for cliInvalid the second value is the error message.
func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	}
	if strings.HasPrefix(args[0], "-") || len(args) > 1 {
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
	return cliRun, args[0]
}

func usage() string {
	return `Usage: termbooru [location]
       termbooru [--version|-version|-v] [--help|-h]

location is a saved query such as "tags=cat+dog&page=2&s=list" or
"s=view&id=123"; the location in effect on exit is printed to stdout.`
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, arg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("termbooru %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", arg, usage())
		os.Exit(2)
	}

	// 1. Load config from .env, the optional file and the environment.
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// 2. Build infrastructure.
	credentials := auth.NewFileCredentialProvider(cfg.CredentialsPath, auth.Credentials{
		UserID: cfg.UserID,
		APIKey: cfg.APIKey,
	})
	client := booru.NewClient(cfg.APIURL, credentials, booru.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	mediaPlayer := player.NewExec(cfg.Player)
	defer mediaPlayer.Stop()

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logging.Get().Warn().Err(err).Str("path", cfg.UIStatePath).Msg("ignoring unreadable ui state")
	}

	logging.Get().Info().Str("api", cfg.APIURL).Str("location", arg).Msg("starting")

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:    booru.NewPostService(client),
		Comments: booru.NewCommentService(client),
		Tags:     booru.NewTagService(booru.NewShardSource(cfg.TagsBase, client), cfg.TagShards),
		Player:   mediaPlayer,
		Editor:   editor.NewEnvEditor(),
		Images:   client,

		Location: arg,
		PageSize: cfg.PageSize,
		Suggest: tagdict.Options{
			MinChars: cfg.SuggestMinChars,
			MaxItems: cfg.SuggestMaxItems,
		},
		SidebarHidden: uiState.SidebarHidden,
		UIStatePath:   cfg.UIStatePath,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termbooru: %v\n", err)
		os.Exit(1)
	}
	if app, ok := final.(tui.App); ok && app.Location() != "" {
		fmt.Println(app.Location())
	}
}
