package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/timerunner/internal/platform/tui"
	"github.com/vovakirdan/timerunner/internal/registry"
	"github.com/vovakirdan/timerunner/internal/runner"
	"github.com/vovakirdan/timerunner/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start Time Runner in interactive menu mode.

Pick a difficulty to play or open the high scores. Quitting a run
returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  timerunner menu
  timerunner menu --fps 30
  timerunner menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	applySettings(logger)
	hold := time.Duration(loadConfig(logger).Input.HoldMS) * time.Millisecond

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	cfg := runtimeConfig(width, height)

	sessionLog, closeLog := fileLogger(logger)
	defer closeLog()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, runner.ID, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			if store == nil {
				continue
			}
			if err := tui.RunScoreboard(store, runner.ID, "Time Runner", cfg.ScreenW, cfg.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue // Back to menu
		}

		runner.SetDifficultyPreset(string(menuResult.Difficulty))

		game, err := registry.Create(runner.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// New seed per run unless fixed
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, runCfg,
			tui.WithHoldDuration(hold),
			tui.WithLogger(sessionLog.With("difficulty", menuResult.Difficulty)),
		); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
