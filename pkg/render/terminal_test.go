package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

var testBounds = physics.Bounds{Width: 1200, Height: 800}

// newSimScreen returns a 60x21 simulated terminal: a 60x20 field where each
// cell covers 20x40 world units, plus the HUD row.
func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(60, 21)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.Screen, x, y int) rune {
	ch, _, _, _ := screen.GetContent(x, y)
	if ch == 0 {
		return ' '
	}
	return ch
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(cellAt(screen, x, y))
	}
	return b.String()
}

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(newSimScreen(t), testBounds)

	tests := []struct {
		name  string
		pos   physics.Vector2D
		wantX int
		wantY int
	}{
		{"origin", physics.Vector2D{}, 0, 0},
		{"center", physics.Vector2D{X: 600, Y: 400}, 30, 10},
		{"inside_cell", physics.Vector2D{X: 619, Y: 439}, 30, 10},
		{"far_corner_clamped", physics.Vector2D{X: 1200, Y: 800}, 59, 19},
		{"negative_clamped", physics.Vector2D{X: -15, Y: -15}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := r.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTerminalRenderer_DrawsEntities(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, testBounds)

	ship := entity.NewShip(1, physics.Vector2D{X: 610, Y: 410}, entity.DefaultShipStats())
	planet := entity.NewPlanet(2, physics.Vector2D{X: 300, Y: 400}, 80, 6)
	core := entity.NewPickup(3, entity.EnergyCore, physics.Vector2D{X: 0, Y: 0}, 8)
	pod := entity.NewPickup(4, entity.FuelPod, physics.Vector2D{X: 1200, Y: 800}, 5)

	r.Clear()
	r.RenderPlanet(*planet)
	r.RenderPickup(*core)
	r.RenderPickup(*pod)
	r.RenderShip(*ship)
	r.Present()

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"ship", 30, 10, '>'},
		{"planet_center", 15, 10, 'O'},
		{"planet_edge", 11, 10, 'O'},
		{"outside_planet", 5, 10, ' '},
		{"energy_core", 0, 0, '*'},
		{"fuel_pod", 59, 19, '+'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellAt(screen, tt.x, tt.y); got != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTerminalRenderer_TinyPlanetStillVisible(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, testBounds)

	r.Clear()
	r.RenderPlanet(*entity.NewPlanet(1, physics.Vector2D{X: 100, Y: 100}, 1, 6))

	if got := cellAt(screen, 5, 2); got != 'O' {
		t.Errorf("tiny planet cell = %q, want 'O'", got)
	}
}

func TestTerminalRenderer_HUD(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, testBounds)

	r.Clear()
	r.RenderHUD(entity.HUD{Fuel: 1000, MaxFuel: 1000, Score: 300, Elapsed: 2.5})

	row := rowText(screen, 20)
	for _, want := range []string{"FUEL 1000/1000", "[==========]", "SCORE 300", "TIME 2.5s"} {
		if !strings.Contains(row, want) {
			t.Errorf("HUD row %q missing %q", row, want)
		}
	}

	r.Clear()
	r.RenderHUD(entity.HUD{Fuel: 0, MaxFuel: 1000})
	if row := rowText(screen, 20); !strings.Contains(row, "[          ]") {
		t.Errorf("empty tank HUD row %q", row)
	}
}

func TestTerminalRenderer_GameOver(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, testBounds)

	r.Clear()
	r.RenderGameOver(700, 42.3)

	want := []string{"GAME OVER", "Score: 700", "Time: 42.3s"}
	for i, line := range want {
		if got := strings.TrimSpace(rowText(screen, 9+i)); got != line {
			t.Errorf("row %d = %q, want %q", 9+i, got, line)
		}
	}
}

func TestTerminalRenderer_RendersSession(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, testBounds)

	cfg := config.DefaultConfig()
	cfg.Session.Seed = 11
	s := engine.NewSession(cfg)
	s.Render(r)

	x, y := r.worldToScreen(s.Ship.Position)
	if got := cellAt(screen, x, y); got != '>' {
		t.Errorf("ship cell = %q, want '>'", got)
	}
	if row := rowText(screen, 20); !strings.Contains(row, "SCORE 0") {
		t.Errorf("HUD row %q", row)
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '>'},
		{22, '>'},
		{23, '/'},
		{90, '^'},
		{135, '\\'},
		{180, '<'},
		{270, 'v'},
		{-90, 'v'},
		{720, '>'},
		{350, '>'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%v) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestFuelBar(t *testing.T) {
	tests := []struct {
		fuel, max float64
		want      string
	}{
		{1000, 1000, "[=====]"},
		{0, 1000, "[     ]"},
		{500, 1000, "[===  ]"},
		{1, 1000, "[=    ]"},
		{5, 0, "[     ]"},
	}
	for _, tt := range tests {
		if got := fuelBar(tt.fuel, tt.max, 5); got != tt.want {
			t.Errorf("fuelBar(%v, %v) = %q, want %q", tt.fuel, tt.max, got, tt.want)
		}
	}
}

func TestTerminalInput_HoldWindow(t *testing.T) {
	clock := time.Unix(0, 0)
	in := NewTerminalInput(nil, 150*time.Millisecond)
	in.now = func() time.Time { return clock }

	if got := in.Poll(); got != (engine.Input{}) {
		t.Fatalf("idle Poll() = %+v", got)
	}

	in.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift))
	in.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	clock = clock.Add(100 * time.Millisecond)
	got := in.Poll()
	want := engine.Input{RotateLeft: true, ThrustForward: true, Boost: true}
	if got != want {
		t.Errorf("Poll() within window = %+v, want %+v", got, want)
	}

	clock = clock.Add(100 * time.Millisecond)
	if got := in.Poll(); got != (engine.Input{}) {
		t.Errorf("Poll() after window = %+v, want idle", got)
	}
}

func TestTerminalInput_KeyMap(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want engine.Input
	}{
		{"left_arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.Input{RotateLeft: true}},
		{"right_arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), engine.Input{RotateRight: true}},
		{"up_arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), engine.Input{ThrustForward: true}},
		{"down_arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), engine.Input{ThrustReverse: true}},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), engine.Input{RotateRight: true}},
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), engine.Input{ThrustForward: true}},
		{"W_boosts", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), engine.Input{ThrustForward: true, Boost: true}},
		{"s", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), engine.Input{ThrustReverse: true}},
		{"shift_down_no_boost", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift), engine.Input{ThrustReverse: true}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), engine.Input{Quit: true}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.Input{Quit: true}},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), engine.Input{Quit: true}},
		{"unmapped", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), engine.Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewTerminalInput(nil, 0)
			in.HandleKey(tt.ev)
			if got := in.Poll(); got != tt.want {
				t.Errorf("Poll() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTerminalInput_QuitIsSticky(t *testing.T) {
	clock := time.Unix(0, 0)
	in := NewTerminalInput(nil, 0)
	in.now = func() time.Time { return clock }

	in.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	clock = clock.Add(time.Hour)
	if !in.Poll().Quit {
		t.Error("quit expired")
	}
}

func TestTerminalInput_Listen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	in := NewTerminalInput(screen, 0)

	done := make(chan struct{})
	go func() {
		in.Listen()
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for !in.Poll().Quit {
		if time.Now().After(deadline) {
			t.Fatal("quit key never reached Poll()")
		}
		time.Sleep(5 * time.Millisecond)
	}

	screen.Fini()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Listen() did not return after Fini()")
	}
}

func TestTerminalInput_ImplementsInputSource(t *testing.T) {
	var _ engine.InputSource = NewTerminalInput(nil, 0)
}
