package render

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/gravity-vortex/pkg/engine"
)

// DefaultHoldWindow is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const DefaultHoldWindow = 150 * time.Millisecond

type action int

const (
	actionLeft action = iota
	actionRight
	actionForward
	actionReverse
	actionBoost
	actionCount
)

// TerminalInput turns tcell key events into engine input. Listen runs on
// its own goroutine; Poll is called by the tick loop.
type TerminalInput struct {
	screen tcell.Screen
	hold   time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pressed [actionCount]time.Time
	quit    bool
}

// NewTerminalInput creates an input source reading from screen
func NewTerminalInput(screen tcell.Screen, hold time.Duration) *TerminalInput {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &TerminalInput{
		screen: screen,
		hold:   hold,
		now:    time.Now,
	}
}

// Listen consumes screen events until the screen is finalized.
func (t *TerminalInput) Listen() {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			t.HandleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// HandleKey records a key press.
//
// Arrows or WASD steer and thrust. Shift with an arrow, or an upper-case
// letter, adds boost. q, Esc and Ctrl-C quit.
func (t *TerminalInput) HandleKey(ev *tcell.EventKey) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	press := func(actions ...action) {
		for _, a := range actions {
			t.pressed[a] = now
		}
	}
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit = true
	case tcell.KeyLeft:
		press(actionLeft)
	case tcell.KeyRight:
		press(actionRight)
	case tcell.KeyUp:
		press(actionForward)
		if shift {
			press(actionBoost)
		}
	case tcell.KeyDown:
		press(actionReverse)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			t.quit = true
		case 'a', 'A':
			press(actionLeft)
		case 'd', 'D':
			press(actionRight)
		case 'w':
			press(actionForward)
		case 'W':
			press(actionForward, actionBoost)
		case 's', 'S':
			press(actionReverse)
		}
	}
}

// Poll implements engine.InputSource.
func (t *TerminalInput) Poll() engine.Input {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	held := func(a action) bool {
		at := t.pressed[a]
		return !at.IsZero() && now.Sub(at) <= t.hold
	}
	return engine.Input{
		RotateLeft:    held(actionLeft),
		RotateRight:   held(actionRight),
		ThrustForward: held(actionForward),
		ThrustReverse: held(actionReverse),
		Boost:         held(actionBoost),
		Quit:          t.quit,
	}
}
