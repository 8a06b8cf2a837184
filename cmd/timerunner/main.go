// timerunner is a side-scrolling runner: run right over floating platforms,
// dodge fires (some of them invisible until revealed) and pick up heals.
//
// Usage:
//
//	timerunner play            - Play in the terminal
//	timerunner menu            - Pick a difficulty interactively
//	timerunner window          - Play in a desktop window
//	timerunner serve           - Start SSH server for remote play
//	timerunner scores          - Show high scores and recent runs
//	timerunner check           - Audit generated levels for a seed
//	timerunner list            - List registered games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.timerunner/scores.db)
//	--config <path>      - Runner config YAML
//	--difficulty <name>  - easy, normal or hard
//	--assets <dir>       - Sprite directory (default: ./assets)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
	"github.com/vovakirdan/timerunner/internal/runner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "timerunner",
	Short: "Time Runner - a side-scrolling runner for terminal and desktop",
	Long: `Time Runner is a side-scrolling runner. Hold right to run, jump
(twice in the air) between floating platforms, dodge fires and collect
heals. Some fires are invisible: the reveal ability shows them for a
while, then needs to cool down.

Available commands:
  play     - Play in the terminal
  menu     - Difficulty picker menu
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  check    - Audit generated levels for reachability
  list     - List registered games

Examples:
  timerunner play
  timerunner play --difficulty hard --watch
  timerunner window --scale 2
  timerunner serve --ssh :2222
  timerunner check --seed 42 --groups 500`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.timerunner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "assets", "Sprite directory (missing sprites use placeholders)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

// newLogger creates the stderr logger shared by a command.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "timerunner",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// applySettings hands the global flags to the runner package before any
// game is created.
func applySettings(logger *log.Logger) {
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	runner.SetAssetsDir(flagAssets, logger)
}

// loadConfig returns the runner config the flags select, preset applied.
func loadConfig(logger *log.Logger) config.RunnerConfig {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		logger.Warn("using default runner config", "error", err)
	}
	if p, err := config.ParseDifficulty(flagDifficulty); err == nil {
		config.ApplyRunnerPreset(&cfg, p)
	}
	return cfg
}

func runtimeConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
