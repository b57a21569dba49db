package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/platform/tui"
	"github.com/vovakirdan/tui-arena/internal/registry"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch a scenario live",
	Long: `Run the scenario in the terminal.

Controls:
  P/Space    - Pause or resume
  N/Right    - Single step while paused
  O          - Toggle the quadtree overlay
  S          - Drop an extra wave
  R          - Restart with the same seed
  Ctrl+S     - Save a text screenshot to ~/.arena/screenshots
  ?          - Full help
  Q/Esc      - Quit (the run is stored)

Examples:
  arena watch skirmish
  arena watch swarm --density dense --fps 30
  arena watch bastion --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := checkScenario(id); err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	arenaCfg, preset, err := loadArena()
	if err != nil {
		return err
	}

	// Logs draw over the alternate screen, so keep them only with --verbose
	logger := newLogger("arena")
	if !flagVerbose {
		logger.SetOutput(io.Discard)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	scenario, err := registry.Create(id, arenaCfg, logger)
	if err != nil {
		return err
	}
	if err := scenario.Reset(rc); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the viewer still works
		store = nil
	}

	runErr := tui.Run(scenario, store, rc, string(preset), logger)

	if store != nil {
		store.Close()
	}
	return runErr
}
