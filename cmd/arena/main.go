// arena is a terminal sandbox for a top-down arcade collision core.
//
// Usage:
//
//	arena list                 - List available scenarios
//	arena run <scenario>       - Simulate headless and store the report
//	arena watch <scenario>     - Watch a scenario live
//	arena serve                - Serve the viewer over SSH
//	arena runs [scenario]      - Show stored run reports
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.arena/runs.db)
//	--config <path>     - Custom arena config YAML
//	--density <preset>  - sparse, normal, dense or stress
//	--verbose           - Debug logging
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/registry"

	// Import scenarios to register them
	_ "github.com/vovakirdan/tui-arena/internal/scenarios"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagDensity string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "TUI Arena - watch a collision core at work in your terminal",
	Long: `TUI Arena runs top-down arcade scenarios on a SAT and quadtree
collision core, headless or live in the terminal.

Available commands:
  list     - Show all scenarios
  run      - Simulate headless and store a run report
  watch    - Watch a scenario live
  serve    - Start SSH server for remote viewers
  runs     - View stored run reports

Examples:
  arena list
  arena run swarm --frames 3600 --density stress
  arena watch bastion --seed 42
  arena serve --ssh :2222
  arena runs swarm`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDensity, "density", "", "Density preset: sparse, normal, dense, stress")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger returns the CLI logger, at debug level with --verbose.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadArena loads the arena config and applies the density preset.
// It returns the preset name actually used.
func loadArena() (config.ArenaConfig, config.DensityPreset, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset, err := config.ParseDensity(flagDensity)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyDensity(&cfg, preset)
	return cfg, preset, nil
}

// seed returns --seed, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// checkScenario fails with a hint when id is not registered.
func checkScenario(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown scenario %q (available: %s)", id, strings.Join(registry.IDs(), ", "))
	}
	return nil
}
