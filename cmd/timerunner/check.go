package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/timerunner/internal/runner"
)

var flagGroups int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit generated levels",
	Long: `Generate a level with the current config and seed, then check every
group against the generation rules:

  - each group is reachable from the previous one with two jumps
  - no three consecutive groups without fires
  - no two consecutive groups holding only invisible fires

Exits non-zero when a violation is found.

Examples:
  timerunner check
  timerunner check --seed 42 --groups 2000
  timerunner check --config ./my-runner.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagGroups, "groups", 500, "Number of forward groups to generate")
}

func runCheck(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig(logger)

	level := runner.NewLevel(cfg, runner.NewSource(flagSeed))
	initial := len(level.Groups)
	for len(level.Groups)-initial < flagGroups {
		if !level.Extend(level.LastBlockX()) {
			fmt.Fprintln(os.Stderr, "Error: generation stopped, check generation.look_ahead")
			os.Exit(1)
		}
	}

	reach := runner.NewReach(cfg)
	violations := reach.Audit(level)

	hidden := 0
	for _, f := range level.Fires {
		if !f.AlwaysVisible {
			hidden++
		}
	}
	logger.Info("level generated",
		"seed", flagSeed,
		"groups", len(level.Groups),
		"fires", len(level.Fires),
		"hidden", hidden,
		"heals", len(level.Heals),
		"max_rise", reach.MaxRise(),
	)

	if len(violations) == 0 {
		fmt.Println("OK: no violations")
		return
	}
	for _, v := range violations {
		logger.Error("violation", "kind", v.Kind, "group", v.Group, "at", level.Groups[v.Group].X)
	}
	fmt.Fprintf(os.Stderr, "%d violations\n", len(violations))
	os.Exit(1)
}
