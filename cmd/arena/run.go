package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/registry"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	flagFrames   int
	flagNoSave   bool
	flagSnapshot bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Simulate a scenario headless",
	Long: `Simulate the scenario at a fixed step without a terminal UI.

A summary is logged every simulated second. When the run ends (or on
Ctrl+C) the final report is printed and stored in the runs database.

Examples:
  arena run skirmish
  arena run swarm --frames 3600 --density stress
  arena run minefield --seed 7 --snapshot
  arena run bastion --config ./my-arena.yaml --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to simulate")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the run report")
	runCmd.Flags().BoolVar(&flagSnapshot, "snapshot", false, "Print the final frame as text")
}

func runRun(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := checkScenario(id); err != nil {
		return err
	}
	if flagFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagFrames)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	arenaCfg, preset, err := loadArena()
	if err != nil {
		return err
	}
	logger := newLogger("arena")

	scenario, err := registry.Create(id, arenaCfg, logger)
	if err != nil {
		return err
	}
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = seed()
	if err := scenario.Reset(rc); err != nil {
		return err
	}
	logger.Info("run started", "scenario", id, "seed", rc.Seed, "density", preset, "frames", flagFrames)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wall := simulate(ctx, scenario, flagFrames, rc.TickRate, logger)
	report := scenario.Report()
	printReport(report, preset, wall)

	if flagSnapshot {
		screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
		scenario.Render(screen)
		fmt.Println(screen.String())
	}

	if flagNoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	defer store.Close()
	runID, err := store.SaveRun(storage.NewRunRecord(report, string(preset), wall))
	if err != nil {
		return err
	}
	logger.Info("run stored", "id", runID)
	return nil
}

// simulate steps the scenario up to frames times and returns the wall time
// spent. It stops early when ctx is canceled.
func simulate(ctx context.Context, s registry.Scenario, frames, perSecond int, logger *log.Logger) time.Duration {
	in := core.NewInputFrame()
	start := time.Now()
	for f := 1; f <= frames; f++ {
		if ctx.Err() != nil {
			logger.Info("interrupted", "frame", f-1)
			break
		}
		res := s.Step(in)
		if f%perSecond == 0 {
			st := s.Stats()
			logger.Info("second",
				"t", fmt.Sprintf("%.0fs", res.State.Elapsed),
				"alive", res.State.Alive,
				"indexed", st.Indexed,
				"tests", st.Tests,
				"hits", st.Dispatches,
				"pairs", st.Suppressed,
			)
		}
	}
	return time.Since(start)
}

func printReport(r arena.Report, preset config.DensityPreset, wall time.Duration) {
	fps := 0.0
	if wall > 0 {
		fps = float64(r.Frames) / wall.Seconds()
	}
	fmt.Printf("Run report - %s (%s, seed %d)\n", r.Scenario, preset, r.Seed)
	fmt.Println()
	fmt.Printf("  %-14s %d (%.1fs simulated, %s wall, %.0f fps)\n", "Frames", r.Frames, r.Elapsed, wall.Round(time.Millisecond), fps)
	fmt.Printf("  %-14s %d\n", "Spawned", r.Spawned)
	fmt.Printf("  %-14s %d\n", "Hits", r.Hits)
	fmt.Printf("  %-14s %d\n", "Kills", r.Kills)
	fmt.Printf("  %-14s %d\n", "Mine triggers", r.MineTriggers)
	fmt.Printf("  %-14s %d\n", "Sentry shots", r.SentryShots)
	fmt.Printf("  %-14s %d\n", "SAT tests", r.Tests)
	fmt.Printf("  %-14s %d\n", "Dispatches", r.Dispatches)
	fmt.Printf("  %-14s %d\n", "Notifications", r.Notifications)
	fmt.Printf("  %-14s %d\n", "Peak pairs", r.PeakPairs)
	fmt.Printf("  %-14s %d\n", "Peak indexed", r.PeakIndexed)
}
