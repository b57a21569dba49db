package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/registry"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

func registerRunsTestScenario() {
	if registry.Exists("runs-test") {
		return
	}
	registry.Register("runs-test", "Runs Test", func(cfg config.ArenaConfig, logger *log.Logger) registry.Scenario {
		return arena.NewWorld(arena.Script{ID: "runs-test", Title: "Runs Test"}, cfg, logger)
	})
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.RunRecord{
		{ID: 4, Scenario: "swarm", Density: "dense", Seed: 9, Frames: 600, WallMillis: 300, Hits: 5, Kills: 2, Tests: 1234},
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"4", "swarm", "dense", "9", "600", "2000", "5", "2", "1234"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("column %d = %q, expected %q", i, rows[0][i], w)
		}
	}
}

func TestRunsModelWithoutStore(t *testing.T) {
	m := NewRunsModel(nil, "", 120, 30)

	if m.Selected() != "" {
		t.Errorf("expected all scenarios selected, got %q", m.Selected())
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected empty message without a store")
	}
}

func TestRunsModelCyclesScenarios(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.RunRecord{Scenario: "a", Frames: 10, WallMillis: 10})
	store.SaveRun(storage.RunRecord{Scenario: "b", Frames: 20, WallMillis: 10})
	registerRunsTestScenario()

	m := NewRunsModel(store, "", 120, 30)
	if len(m.runs) != 2 {
		t.Fatalf("all scenarios: expected 2 runs, got %d", len(m.runs))
	}
	if !strings.Contains(m.View(), "2 runs over 2 scenarios") {
		t.Error("expected aggregate summary for all scenarios")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.Selected() != "runs-test" || len(m.runs) != 0 {
		t.Errorf("tab should move to the registered scenario, got %q", m.Selected())
	}

	prev, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = prev.(RunsModel)
	if m.Selected() != "" || len(m.runs) != 2 {
		t.Errorf("shift+tab should return to all scenarios, got %q", m.Selected())
	}

	done, cmd := m.Update(runeKey('q'))
	if cmd == nil || done.(RunsModel).View() != "" {
		t.Error("q should quit")
	}
}
