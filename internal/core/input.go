package core

// Action is a viewer intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Space - pause or resume the simulation
	ActionStep           // N, Right - advance one frame while paused
	ActionOverlay        // O - toggle the spatial index overlay
	ActionRestart        // R - reset the scenario with the same seed
	ActionSpawn          // S - drop an extra wave into the arena
	ActionQuit           // Q, Ctrl+C - leave the viewer
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionOverlay:
		return "Overlay"
	case ActionRestart:
		return "Restart"
	case ActionSpawn:
		return "Spawn"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions triggered during one frame. The zero
// value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set marks an action as triggered for this frame. Out-of-range actions
// are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < 32 {
		f.bits |= 1 << uint(a)
	}
}

// Has reports whether the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < 32 && f.bits&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool { return f.bits == 0 }

// Actions lists the triggered actions in ascending order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < 32; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() { f.bits = 0 }
