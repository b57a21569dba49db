// Package registry maps scenario IDs to factories. Scenario packages
// register from init, so the CLI and the SSH server can create them by
// name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
)

// Scenario is a simulation the platform can run headless or watch.
type Scenario interface {
	// ID is the registry key, also stored with runs.
	ID() string
	Title() string

	// Reset discards all state and spawns the initial population.
	// It fails only on broken entity data.
	Reset(cfg core.RuntimeConfig) error

	// Step handles viewer actions and advances one fixed frame unless
	// paused.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.SimState
	Stats() collision.Stats
	Report() arena.Report
}

// Info describes a registered scenario.
type Info struct {
	ID    string
	Title string
}

// Factory builds a scenario for the given configuration. logger may be nil.
type Factory func(cfg config.ArenaConfig, logger *log.Logger) Scenario

// ErrUnknownScenario is returned by Create for unregistered IDs.
var ErrUnknownScenario = errors.New("registry: unknown scenario")

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a scenario factory, usually from an init function. It
// panics on an empty ID, a nil factory or a duplicate ID.
func Register(id, title string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an ID and a factory")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}
	entries[id] = entry{info: Info{ID: id, Title: title}, factory: f}
}

// List returns every registered scenario sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// IDs returns the registered scenario IDs, sorted.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, info := range list {
		ids[i] = info.ID
	}
	return ids
}

// Create instantiates the scenario registered under id.
func Create(id string, cfg config.ArenaConfig, logger *log.Logger) (Scenario, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScenario, id)
	}
	return e.factory(cfg, logger), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
