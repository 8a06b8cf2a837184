package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/timerunner/internal/platform/tui"
	"github.com/vovakirdan/timerunner/internal/runner"
	"github.com/vovakirdan/timerunner/internal/storage"
)

var (
	flagInteractive bool
	flagRecent      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 scores, aggregate stats and the most recent runs.

Examples:
  timerunner scores
  timerunner scores --recent 20
  timerunner scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table view")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := runner.ID
	title := runner.New().Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, gameID, title, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'timerunner play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// Show high score
	fmt.Println()
	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Runs: %d  Avg: %.0f  Farthest: %d  Time played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.MaxDistance, formatDuration(stats.TotalTicks))
		fmt.Printf("Ended by: %s\n", formatCauses(stats.Causes))
	}

	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil || len(runs) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-10s  %-10s  %-6s  %-6s  %s\n", "Score", "Distance", "Time", "Cause", "Date")
	for _, r := range runs {
		fmt.Printf("  %-10d  %-10d  %-6s  %-6s  %s\n",
			r.Score, r.Distance, formatDuration(int64(r.Ticks)), r.Cause, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// formatDuration renders a tick count as m:ss at the configured tick rate.
func formatDuration(ticks int64) string {
	secs := ticks / int64(flagFPS)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func formatCauses(causes map[string]int) string {
	keys := make([]string, 0, len(causes))
	for k := range causes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, causes[k]))
	}
	return strings.Join(parts, ", ")
}
