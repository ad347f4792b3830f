// drift is Orbital Drift, a satellite survival game for the terminal.
//
// Usage:
//
//	drift list              - List available games
//	drift play [game]       - Play a game (default: drift)
//	drift menu              - Start menu to pick games interactively
//	drift serve             - Start SSH server for remote play
//	drift scores [game]     - Show top runs and statistics
//	drift sim               - Run the autopilot headless and print a summary
//	drift config            - Print the effective game config as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.drift/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--log-file <path>     - Write logs of interactive commands to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/games/satellite"
	"github.com/vovakirdan/orbital-drift/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logger = log.New(io.Discard)

	// logCloser closes the log file opened for interactive commands
	logCloser io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drift",
	Short: "Orbital Drift - keep a satellite alive in a debris field",
	Long: `Orbital Drift is a terminal game: steer a small satellite with
attitude thrusters and a main engine, dodge drifting debris and climb
as far as the battery lets you.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View top runs and statistics
  sim      - Headless autopilot run
  config   - Print the effective config

Examples:
  drift play
  drift play drift_free --difficulty hard
  drift menu
  drift serve --ssh :2222
  drift sim --seed 42 --seconds 120`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.drift/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play and menu sessions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging builds the stderr logger shared by every command.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "drift",
		Level:           level,
	})
	satellite.SetLogger(logger)
	tui.SetLogger(logger)
	return nil
}

// interactiveLogging keeps log lines off the alternate screen: they go to
// --log-file when set and are dropped otherwise.
func interactiveLogging() {
	if flagLogFile == "" {
		satellite.SetLogger(nil)
		tui.SetLogger(nil)
		return
	}

	if dir := filepath.Dir(flagLogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("cannot create log directory", "err", err)
		}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("cannot open log file, logging disabled", "path", flagLogFile, "err", err)
		satellite.SetLogger(nil)
		tui.SetLogger(nil)
		return
	}
	logCloser = f

	fileLogger := logger.WithPrefix("drift")
	fileLogger.SetOutput(f)
	satellite.SetLogger(fileLogger)
	tui.SetLogger(fileLogger)
}
