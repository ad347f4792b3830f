package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/platform/tui"
	"github.com/vovakirdan/orbital-drift/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Pick a game, then a difficulty. After a game you return to the menu
to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back to the game list
  Tab          - Scoreboard
  Q            - Quit

Examples:
  drift menu
  drift menu --fps 30
  drift menu --db ./scores.db --sound`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0..1)")
}

func runMenu(_ *cobra.Command, _ []string) {
	applyGameFlags()
	cfg := terminalConfig()

	store := openStore()
	stopSound := startSound()
	interactiveLogging()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, store, cfg, tui.Session{Difficulty: string(menuResult.Difficulty)})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if result.Quit {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	stopSound()
	if store != nil {
		store.Close()
	}
}
