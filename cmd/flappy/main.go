// flappy is a deterministic Flappy Bird simulation for the terminal.
//
// Usage:
//
//	flappy play              - Play locally
//	flappy serve             - Start SSH server for remote play
//	flappy simulate          - Run a headless game and print the final state
//	flappy replay list       - List recorded runs
//	flappy replay verify <id> - Re-run a recorded run and check the outcome
//	flappy config            - Print the effective simulation config
//
// Global flags:
//
//	--tps <rate>    - Override tick rate (default: from config, 50)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--config <path> - Custom simulation config YAML
//	--db <path>     - Set database path (default: ~/.flappy/runs.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagTPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a deterministic Flappy Bird for your terminal",
	Long: `Flappy runs a fixed-tick Flappy Bird simulation in your terminal.
The same seed and the same jumps always produce the same game.

Available commands:
  play      - Play locally
  serve     - Start SSH server for remote play
  simulate  - Run a headless game
  replay    - List and verify recorded runs
  config    - Print the effective simulation config

Examples:
  flappy play
  flappy play --seed 42
  flappy serve --ssh :2222
  flappy simulate --ticks 500 --jump-every 18
  flappy replay verify 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Tick rate in ticks per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the simulation config and applies the --tps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagTPS > 0 {
		cfg.Timing.TickRate = flagTPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	}), nil
}
