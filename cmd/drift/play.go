package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/games/satellite"
	"github.com/vovakirdan/orbital-drift/internal/platform/audio"
	"github.com/vovakirdan/orbital-drift/internal/platform/tui"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: drift).

Games:
  drift       - The view scrolls up on its own; keep up with it
  drift_free  - The view follows the satellite; climb at your own pace

Controls:
  A/Left     - Rotate counter-clockwise
  D/Right    - Rotate clockwise
  Space/W/Up - Fire the main thruster
  P          - Pause
  R          - Restart (after game over)
  B/Esc      - Back to menu (paused or game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 5 HP, sparse debris, slow ramp
  normal - The config as written, with spawn-rate ramp
  hard   - 2 HP, dense debris, fast ramp
  fixed  - No spawn-rate ramp

Examples:
  drift play
  drift play drift_free
  drift play --difficulty hard --sound
  drift play --config ./my-satellite.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0..1)")
}

// addGameFlags registers the flags that tune a game before it starts.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags() {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	satellite.SetConfigPath(flagConfig)
	satellite.SetDifficultyPreset(flagDifficulty)
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// startSound installs the speaker as the game's cue sink.
func startSound() func() {
	if !flagSound {
		return func() {}
	}
	player := audio.NewPlayer(flagVolume)
	if err := player.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return func() {}
	}
	satellite.SetCues(player)
	return func() {
		satellite.SetCues(nil)
		player.Close()
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "drift"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'drift list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags()
	cfg := terminalConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	stopSound := startSound()
	interactiveLogging()

	_, runErr := tui.Run(game, store, cfg, tui.Session{Difficulty: flagDifficulty})

	// Release resources before potential exit
	stopSound()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
