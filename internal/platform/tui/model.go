package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/registry"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for watching a running scenario.
// The scenario must already be Reset.
type Model struct {
	scenario registry.Scenario
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	density  string
	logger   *log.Logger
	keys     ViewerKeyMap
	help     help.Model
	input    core.InputFrame
	state    core.SimState
	busy     time.Duration // time spent inside Step, excluding pauses
	err      error
	quitting bool
	saved    bool
}

// NewModel creates a viewer for scenario. store may be nil, in which case
// the run is not recorded on quit.
func NewModel(scenario registry.Scenario, store *storage.Store, cfg core.RuntimeConfig, density string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return Model{
		scenario: scenario,
		screen:   core.NewScreen(cfg.ScreenW, viewHeight(cfg.ScreenH)),
		store:    store,
		config:   cfg,
		density:  density,
		logger:   logger,
		keys:     DefaultViewerKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
		state:    scenario.State(),
	}
}

// viewHeight leaves the last terminal row for the help line.
func viewHeight(h int) int {
	return max(h-1, 0)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, viewHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Simulation actions are queued for
// the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleTick processes one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) {
		m.saveRun()
		if err := m.scenario.Reset(m.config); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.state = m.scenario.State()
		m.busy, m.saved = 0, false
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	start := time.Now()
	result := m.scenario.Step(m.input)
	if result.Advanced {
		m.busy += time.Since(start)
	}
	m.state = result.State

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the run so far. Best effort: the viewer keeps going
// when the store is missing or the write fails.
func (m *Model) saveRun() {
	if m.store == nil || m.saved || m.state.Frame == 0 {
		return
	}
	rec := storage.NewRunRecord(m.scenario.Report(), m.density, m.busy)
	if _, err := m.store.SaveRun(rec); err != nil {
		m.logger.Warn("could not save run", "scenario", m.scenario.ID(), "error", err)
	}
	m.saved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scenario.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scenario.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// Err returns the error that stopped the viewer, if any.
func (m Model) Err() error {
	return m.err
}

// State returns the last observed simulation state.
func (m Model) State() core.SimState {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scenario.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for an already reset scenario.
func Run(scenario registry.Scenario, store *storage.Store, cfg core.RuntimeConfig, density string, logger *log.Logger) error {
	model := NewModel(scenario, store, cfg, density, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
