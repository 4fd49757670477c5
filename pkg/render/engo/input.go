// pkg/render/engo/input.go
package engo

import (
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/gravity-vortex/pkg/engine"
)

// button names registered with engo.Input
const (
	buttonLeft    = "rotateLeft"
	buttonRight   = "rotateRight"
	buttonThrust  = "thrust"
	buttonReverse = "reverse"
	buttonBoost   = "boost"
	buttonQuit    = "quit"
)

// SetupInputBindings registers the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonThrust, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(buttonReverse, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(buttonBoost, engo.KeyLeftShift, engo.KeyRightShift)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)
}

// InputSystem samples the keyboard once per frame and serves the sample as
// an engine.InputSource.
type InputSystem struct {
	down func(button string) bool

	mu      sync.Mutex
	current engine.Input
}

// NewInputSystem creates an input system reading engo's global input state.
func NewInputSystem() *InputSystem {
	return &InputSystem{
		down: func(button string) bool { return engo.Input.Button(button).Down() },
	}
}

// Update satisfies ecs.System
func (is *InputSystem) Update(dt float32) {
	sample := readButtons(is.down)

	is.mu.Lock()
	defer is.mu.Unlock()
	// quit is latched until the session sees it
	sample.Quit = sample.Quit || is.current.Quit
	is.current = sample
}

// Remove satisfies ecs.System
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Poll implements engine.InputSource.
func (is *InputSystem) Poll() engine.Input {
	is.mu.Lock()
	defer is.mu.Unlock()
	in := is.current
	is.current.Quit = false
	return in
}

func readButtons(down func(string) bool) engine.Input {
	return engine.Input{
		RotateLeft:    down(buttonLeft),
		RotateRight:   down(buttonRight),
		ThrustForward: down(buttonThrust),
		ThrustReverse: down(buttonReverse),
		Boost:         down(buttonBoost),
		Quit:          down(buttonQuit),
	}
}
