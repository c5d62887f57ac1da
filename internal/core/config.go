package core

// RuntimeConfig contains configuration passed to the game on every reset.
// The game uses it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// GameState is the HUD-level summary of a run.
type GameState struct {
	Score         int     // Current score
	Combo         int     // Current combo
	TimeRemaining float64 // Seconds left on the countdown
	Running       bool    // Whether the run is live
	GameOver      bool    // Whether the run has ended
	Paused        bool    // Whether the run is paused
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
	// Ended is true only for the tick on which the run finished.
	Ended bool
}
