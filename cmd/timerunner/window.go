package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/timerunner/internal/assets"
	"github.com/vovakirdan/timerunner/internal/platform/window"
	"github.com/vovakirdan/timerunner/internal/runner"
	"github.com/vovakirdan/timerunner/internal/storage"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the runner in a desktop window with real key up/down input.

Sprites are read from the --assets directory (one YAML file per sprite,
optionally pointing at a PNG strip). Missing sprites are drawn as
placeholder shapes.

Examples:
  timerunner window
  timerunner window --scale 2
  timerunner window --assets ./my-sprites --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 1, "Window pixels per playfield pixel")
}

func runWindow(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg := loadConfig(logger)
	cfg.Screen.FPS = flagFPS

	lib := assets.OpenDir(flagAssets, logger)
	if missing := lib.Missing(); len(missing) > 0 {
		logger.Info("using placeholder sprites", "missing", missing)
	}

	game := runner.New(
		runner.WithConfig(cfg),
		runner.WithSprites(lib),
		runner.WithLogger(logger),
	)
	rc := runtimeConfig(cfg.Screen.Width, cfg.Screen.Height)
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	game.Reset(rc)
	logger.Debug("runner ready", "difficulty", flagDifficulty, "seed", rc.Seed)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}

	app := window.NewApp(game, window.Options{
		Sprites: lib,
		Store:   store,
		Logger:  logger,
		Scale:   flagScale,
	})
	runErr := window.Run(app, game.Title())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
