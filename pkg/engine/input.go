// pkg/engine/input.go
package engine

// Input is the set of player intents sampled once per tick
type Input struct {
	// RotateLeft raises the heading, turning the ship counter-clockwise on
	// screen. RotateRight lowers it.
	RotateLeft  bool
	RotateRight bool

	ThrustForward bool
	ThrustReverse bool
	Boost         bool
	Quit          bool
}

// InputSource is polled by the loop once per tick
type InputSource interface {
	Poll() Input
}

// InputFunc adapts a plain function to InputSource
type InputFunc func() Input

// Poll calls f
func (f InputFunc) Poll() Input {
	return f()
}

// Idle never presses anything. Useful for headless runs and tests.
var Idle = InputFunc(func() Input { return Input{} })
