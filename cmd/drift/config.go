package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbital-drift/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config as YAML",
	Long: `Load the config the games would use and print it as YAML,
with the difficulty preset applied. Handy as a starting point:

  drift config > ~/.drift/configs/satellite.yaml

Search order:
  --config path, ~/.drift/configs/satellite.yaml,
  ./configs/satellite.yaml, then the built-in defaults.

Examples:
  drift config
  drift config --difficulty hard
  drift config --config ./my-satellite.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addGameFlags(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, source, err := config.LoadSatellite(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config loaded", "source", source)

	if flagDifficulty != "" {
		preset, perr := config.ParsePreset(flagDifficulty)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", perr)
			os.Exit(1)
		}
		config.ApplySatellitePreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config from %s: %v\n", source, err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
