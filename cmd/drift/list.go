package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/games/satellite"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game variants",
	Long: `Shows every registered variant with its camera mode and, when the
scores database is available, the best run recorded for it.`,
	Run: runList,
}

// variantRow is one line of the variant table.
type variantRow struct {
	ID     string
	Title  string
	Camera string
	Best   string
}

func runList(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Debug("listing without scores", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rows := variantRows(registry.List(), store)
	if len(rows) == 0 {
		fmt.Println("No games available.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tCAMERA\tBEST")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.ID, r.Title, r.Camera, r.Best)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'drift play <id>' to fly a variant.")
}

// variantRows describes each registered game. The store may be nil.
func variantRows(games []registry.GameInfo, store *storage.Store) []variantRow {
	rows := make([]variantRow, 0, len(games))
	for _, info := range games {
		row := variantRow{ID: info.ID, Title: info.Title, Camera: "-", Best: "-"}

		if g, err := registry.Create(info.ID); err == nil {
			if sg, ok := g.(*satellite.Game); ok {
				row.Camera = sg.Mode().String()
			}
		}

		if store != nil {
			if stats, err := store.GetGameStats(info.ID); err == nil && stats.GamesCount > 0 {
				row.Best = fmt.Sprintf("%d (%.0f m)", stats.HighScore, stats.BestDistance)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
