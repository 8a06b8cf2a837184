package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/platform/tui"
	"github.com/vovakirdan/timerunner/internal/registry"
	"github.com/vovakirdan/timerunner/internal/runner"
	"github.com/vovakirdan/timerunner/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Right/D    - Run forward (hold)
  Left/A     - Run back (hold)
  Space/Up   - Jump, once more in the air
  Tab/E      - Reveal hidden fires
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Screenshot

Terminals only report key presses, so a direction counts as held for a
short window after each press (input.hold_ms in the config).

Difficulty options:
  easy   - Longer reveal, shorter cooldown, fewer invisible fires
  normal - Config values as written
  hard   - Short reveal, long cooldown, more invisible fires

Examples:
  timerunner play
  timerunner play --difficulty hard
  timerunner play --config ./my-runner.yaml --watch
  timerunner play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file on change (applies on restart)")
}

// configurable is a game that accepts a new config between runs.
type configurable interface {
	SetConfig(config.RunnerConfig)
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()
	applySettings(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(runner.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runnerCfg := loadConfig(logger)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		// Continue without storage - game still works
		store = nil
	}

	// stderr belongs to the terminal UI until the program exits
	sessionLog, closeLog := fileLogger(logger)
	defer closeLog()
	if flagWatch {
		if c, ok := game.(configurable); ok {
			stop := watchConfig(c, sessionLog)
			defer stop()
		}
	}

	runErr := tui.Run(game, store, runtimeConfig(width, height),
		tui.WithHoldDuration(time.Duration(runnerCfg.Input.HoldMS)*time.Millisecond),
		tui.WithLogger(sessionLog),
	)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// fileLogger returns a logger appending to ~/.timerunner/timerunner.log.
// If the file cannot be opened, session logs are dropped.
func fileLogger(fallback *log.Logger) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".timerunner")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "timerunner.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				l := log.NewWithOptions(f, log.Options{
					ReportTimestamp: true,
					Prefix:          "timerunner",
					Level:           fallback.GetLevel(),
				})
				var once sync.Once
				return l, func() { once.Do(func() { f.Close() }) }
			}
		}
	}
	fallback.Warn("session log unavailable", "error", err)
	return log.New(io.Discard), func() {}
}

// watchConfig forwards reloaded configs to the game until the returned
// stop func is called.
func watchConfig(game configurable, logger *log.Logger) func() {
	path := config.ResolvePath(flagConfig)
	if path == "" {
		logger.Warn("no config file to watch, using embedded defaults",
			"hint", "pass --config or create ~/.timerunner/configs/runner.yaml")
		return func() {}
	}

	w, err := config.Watch(path)
	if err != nil {
		logger.Warn("config watch failed", "path", path, "error", err)
		return func() {}
	}
	logger.Info("watching config", "path", w.Path())

	preset, _ := config.ParseDifficulty(flagDifficulty)
	done := make(chan struct{})
	go func() {
		defer close(done)
		configs, errs := w.Configs, w.Errors
		for configs != nil || errs != nil {
			select {
			case cfg, ok := <-configs:
				if !ok {
					configs = nil
					continue
				}
				config.ApplyRunnerPreset(&cfg, preset)
				game.SetConfig(cfg)
				logger.Info("config reloaded, applies on next restart", "path", w.Path())
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("config reload rejected", "error", err)
			}
		}
	}()

	return func() {
		_ = w.Close()
		<-done
	}
}
