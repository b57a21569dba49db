package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arena/internal/platform/tui"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show stored run reports",
	Long: `Browse stored run reports, newest first.

On a terminal this opens an interactive table (tab switches scenario).
With --plain, or when stdout is not a terminal, a text listing is printed.

Examples:
  arena runs
  arena runs swarm
  arena runs --plain --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the table")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Runs to list in plain mode")
}

func runRuns(cmd *cobra.Command, args []string) error {
	scenario := ""
	if len(args) == 1 {
		scenario = args[0]
		if err := checkScenario(scenario); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 120, 30
		}
		return tui.RunRunsTable(store, scenario, width, height)
	}
	return printRuns(store, scenario)
}

func printRuns(store *storage.Store, scenario string) error {
	runs, err := store.RecentRuns(scenario, flagLimit)
	if err != nil {
		return err
	}

	title := scenario
	if title == "" {
		title = "all scenarios"
	}
	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Try 'arena run <scenario>' to record the first one.")
		return nil
	}

	fmt.Printf("  %-5s  %-10s  %-7s  %-8s  %-7s  %-6s  %-6s  %-10s  %s\n",
		"ID", "Scenario", "Density", "Frames", "FPS", "Hits", "Kills", "Tests", "Date")
	fmt.Printf("  %-5s  %-10s  %-7s  %-8s  %-7s  %-6s  %-6s  %-10s  %s\n",
		"--", "--------", "-------", "------", "---", "----", "-----", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-7s  %-8d  %-7.0f  %-6d  %-6d  %-10d  %s\n",
			r.ID, r.Scenario, r.Density, r.Frames, r.FramesPerSecond(), r.Hits, r.Kills, r.Tests,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenario != "" {
		best, err := store.BestRun(scenario)
		if err == nil && best != nil {
			fmt.Println()
			fmt.Printf("Fastest: run %d at %.0f fps (seed %d)\n", best.ID, best.FramesPerSecond(), best.Seed)
		}
	}
	return nil
}
