package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagScenario    string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena SSH server",
	Long: `Start an SSH server that lets users watch scenarios remotely.

Each SSH connection gets its own freshly seeded scenario. The scenario can
be picked as the SSH command; otherwise --scenario is used. Runs are stored
in the server's database when a viewer quits.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arena/host_key

Examples:
  arena serve                           # Listen on :23234 with auto-generated key
  arena serve --ssh :2222               # Listen on port 2222
  arena serve --scenario swarm          # Default to the swarm scenario
  arena serve --density stress          # Serve crowded arenas
  arena serve --max-sessions 4          # Allow at most four viewers

Users can connect with:
  ssh localhost -p 23234
  ssh localhost -p 23234 -t minefield`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagScenario, "scenario", "skirmish", "Scenario for sessions that do not name one")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 32, "Concurrent viewers allowed (0 for no limit)")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := checkScenario(flagScenario); err != nil {
		return err
	}
	arenaCfg, preset, err := loadArena()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MaxSessions = flagMaxSessions
	cfg.Scenario = flagScenario
	cfg.Arena = arenaCfg
	cfg.Density = string(preset)
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, newLogger("arena-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting arena SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
