package game

// Game is implemented by user code driving the engine. Init runs once
// before the first frame, Update once per frame before the registries
// are drained and the world is rendered.
type Game interface {
	Init(state *State)
	Update(state *State)
}

// KeyHandler is implemented by games that want per-key callbacks. The
// keyboard state on State is updated before these run.
type KeyHandler interface {
	Keydown(state *State, key Key)
	Keyup(state *State, key Key)
}

// ShutdownGuard is implemented by games that want to veto a window
// close request. Returning false keeps the game running. Termination
// via State.Terminate is not guarded.
type ShutdownGuard interface {
	CanShutdown(state *State) bool
}
