package core

// RuntimeConfig is what the platform hands a game on Reset: the screen it
// may draw on and how the simulation is clocked.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // Board RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns the configuration used when no terminal size is
// known.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each tick.
// The platform saves Score, Moves and BestCombo once GameOver is set.
type GameState struct {
	Score     int
	Moves     int // Legal moves made this game
	BestCombo int // Deepest cascade pass reached
	GameOver  bool
	Paused    bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
