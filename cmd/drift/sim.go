package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/games/satellite"
	"github.com/vovakirdan/orbital-drift/internal/platform/tui"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

var (
	flagSimGame    string
	flagSimSeconds float64
	flagSimWidth   int
	flagSimHeight  int
	flagSimSave    bool
	flagSimPlayer  string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless and print a summary",
	Long: `Fly a run with the built-in autopilot without a terminal UI.

The same seed, size and config always produce the same run, so this
is a quick way to check tuning changes or reproduce a bug.

Examples:
  drift sim --seed 42
  drift sim --game drift_free --seconds 300 --difficulty hard
  drift sim --seed 7 --save --player bot`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimGame, "game", "drift", "Game to simulate")
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 120, "Simulated seconds before the run is stopped")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Virtual screen height")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the run in the scores database")
	simCmd.Flags().StringVar(&flagSimPlayer, "player", "autopilot", "Player name stored with --save")
	addGameFlags(simCmd)
}

func runSim(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSimGame) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", flagSimGame)
		os.Exit(1)
	}
	applyGameFlags()

	created, err := registry.Create(flagSimGame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*satellite.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s cannot be flown by the autopilot\n", flagSimGame)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
	}
	game.Reset(cfg)

	pilot := satellite.NewAutopilot()
	maxTicks := int(flagSimSeconds * float64(cfg.TickRate))
	progressEvery := 10 * cfg.TickRate

	start := time.Now()
	ticks := 0
	for ; ticks < maxTicks && !game.State().GameOver; ticks++ {
		game.Step(pilot.Next(game))
		if ticks > 0 && ticks%progressEvery == 0 {
			logger.Info("sim progress",
				"t", game.World().Now(),
				"score", game.State().Score,
				"hp", game.World().Health().HP(),
				"debris", game.World().Spawner().Count(),
			)
		}
	}
	elapsed := time.Since(start)

	report := game.Report()
	fmt.Printf("%s - seed %d\n\n", game.Title(), seed)
	fmt.Printf("  Score:      %d\n", report.Score)
	fmt.Printf("  Distance:   %.1f\n", report.Distance)
	fmt.Printf("  Time:       %s (%d ticks)\n", clock(report.Duration), report.Ticks)
	fmt.Printf("  Hits:       %d\n", report.Hits)
	fmt.Printf("  Thrusts:    %d\n", report.Thrusts)
	if game.State().GameOver {
		fmt.Printf("  Ended by:   %s\n", report.Cause)
	} else {
		fmt.Printf("  Ended by:   time limit (%.0fs)\n", flagSimSeconds)
	}
	fmt.Printf("  Wall time:  %s\n", elapsed.Round(time.Millisecond))

	if !flagSimSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	session := tui.Session{Player: flagSimPlayer, Difficulty: string(game.Difficulty())}
	id, err := store.SaveRun(tui.RunFromReport(game.ID(), session, report))
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved run %s\n", id)
}
