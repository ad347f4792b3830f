package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresRun    string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show top runs and statistics",
	Long: `Without a game, show a summary of every game played.
With a game, show its best runs (or the latest with --recent).

Examples:
  drift scores
  drift scores drift
  drift scores drift_free --recent --limit 20
  drift scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  drift scores drift --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored run of the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'drift list' to see available games.")
			os.Exit(1)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		err = showRun(store, flagScoresRun)
	case flagScoresClear:
		if gameID == "" {
			err = errors.New("--clear needs a game")
			break
		}
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared every run of %s.\n", gameID)
		}
	case gameID == "":
		err = showSummary(store)
	default:
		err = showRuns(store, gameID)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'drift play' to set the first record!")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Print header
	fmt.Printf("  %-12s  %5s  %6s  %8s  %9s  %8s  %s\n", "Game", "Runs", "Best", "Average", "Farthest", "Flown", "Last played")
	fmt.Printf("  %-12s  %5s  %6s  %8s  %9s  %8s  %s\n", "----", "----", "----", "-------", "--------", "-----", "-----------")

	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-12s  %5d  %6d  %8.1f  %9.1f  %8s  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.BestDistance,
			clock(s.TotalTime), s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func showRuns(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	var runs []storage.Run
	heading := "Top Runs"
	if flagScoresRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'drift play %s' to set the first record!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %6s  %8s  %6s  %4s  %-9s  %-6s  %-10s  %s\n", "Rank", "Score", "Distance", "Time", "Hits", "Cause", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %6s  %8s  %6s  %4s  %-9s  %-6s  %-10s  %s\n", "----", "-----", "--------", "----", "----", "-----", "-----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %6d  %8.1f  %6s  %4d  %-9s  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Distance, clock(r.Duration), r.Hits, r.Cause,
			orDash(r.Difficulty), orDash(r.Player), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	// Show the aggregate line
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Runs: %d  Farthest: %.1f\n", stats.HighScore, stats.GamesCount, stats.BestDistance)
	return nil
}

func showRun(store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with ID %s", id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Game:        %s\n", r.GameID)
	fmt.Printf("  Player:      %s\n", orDash(r.Player))
	fmt.Printf("  Difficulty:  %s\n", orDash(r.Difficulty))
	fmt.Printf("  Seed:        %d\n", r.Seed)
	fmt.Printf("  Score:       %d\n", r.Score)
	fmt.Printf("  Distance:    %.1f\n", r.Distance)
	fmt.Printf("  Time:        %s (%d ticks)\n", clock(r.Duration), r.Ticks)
	fmt.Printf("  Hits:        %d\n", r.Hits)
	fmt.Printf("  Thrusts:     %d\n", r.Thrusts)
	fmt.Printf("  Ended by:    %s\n", r.Cause)
	fmt.Printf("  Played:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// clock renders seconds as m:ss.
func clock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
