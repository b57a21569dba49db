package core

// RuntimeConfig is handed to a scenario when it is reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation frames per second
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed frame step in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// SimState is the externally visible state of a running scenario.
type SimState struct {
	Frame   uint64  // frames simulated since reset
	Elapsed float64 // simulated seconds
	Alive   int     // live units
	Paused  bool
	Overlay bool // spatial index overlay is drawn
}

// StepResult is returned by Step after each frame.
type StepResult struct {
	State    SimState
	Advanced bool // false when the frame was skipped because of pause
}
