// pkg/entity/ship_test.go
package entity

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func nearVec(a, b physics.Vector2D) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestNewShip(t *testing.T) {
	center := physics.Vector2D{X: 600, Y: 400}
	ship := NewShip(1, center, DefaultShipStats())

	if ship.Position != center {
		t.Errorf("Position = %v, want %v", ship.Position, center)
	}
	if ship.Velocity != (physics.Vector2D{}) {
		t.Errorf("Velocity = %v, want zero", ship.Velocity)
	}
	if ship.Fuel != 1000 {
		t.Errorf("Fuel = %v, want 1000", ship.Fuel)
	}
	if ship.Radius != 15 {
		t.Errorf("Radius = %v, want 15", ship.Radius)
	}
}

func TestShip_Rotate(t *testing.T) {
	ship := NewShip(1, physics.Vector2D{}, DefaultShipStats())

	ship.Rotate(1)
	if ship.Heading != 5 {
		t.Errorf("Heading after +1 = %v, want 5", ship.Heading)
	}
	ship.Rotate(-1)
	ship.Rotate(-1)
	if ship.Heading != -5 {
		t.Errorf("Heading after two -1 = %v, want -5", ship.Heading)
	}

	for i := 0; i < 100; i++ {
		ship.Rotate(1)
	}
	if ship.Heading != 495 {
		t.Errorf("Heading should accumulate without wrapping, got %v", ship.Heading)
	}
}

func TestShip_Thrust(t *testing.T) {
	tests := []struct {
		name     string
		heading  float64
		reverse  bool
		boost    bool
		wantVel  physics.Vector2D
		wantFuel float64
	}{
		{"forward_east", 0, false, false, physics.Vector2D{X: 0.3}, 999.8},
		{"reverse_east", 0, true, false, physics.Vector2D{X: -0.15}, 999.8},
		{"boost_forward", 0, false, true, physics.Vector2D{X: 0.6}, 998.8},
		{"boost_reverse", 0, true, true, physics.Vector2D{X: -0.3}, 998.8},
		{"forward_screen_up", 90, false, false, physics.Vector2D{Y: -0.3}, 999.8},
		{"forward_screen_down", -90, false, false, physics.Vector2D{Y: 0.3}, 999.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewShip(1, physics.Vector2D{X: 600, Y: 400}, DefaultShipStats())
			ship.Heading = tt.heading

			if !ship.Thrust(tt.reverse, tt.boost) {
				t.Fatal("Thrust() = false with a full tank")
			}
			if !nearVec(ship.Velocity, tt.wantVel) {
				t.Errorf("Velocity = %v, want %v", ship.Velocity, tt.wantVel)
			}
			if !near(ship.Fuel, tt.wantFuel) {
				t.Errorf("Fuel = %v, want %v", ship.Fuel, tt.wantFuel)
			}
		})
	}
}

func TestShip_ThrustWithEmptyTank(t *testing.T) {
	ship := NewShip(1, physics.Vector2D{}, DefaultShipStats())
	ship.Fuel = 0
	ship.Velocity = physics.Vector2D{X: 1, Y: 1}

	if ship.Thrust(false, true) {
		t.Error("Thrust() = true with an empty tank")
	}
	if ship.Velocity != (physics.Vector2D{X: 1, Y: 1}) {
		t.Errorf("Velocity changed to %v", ship.Velocity)
	}
	if ship.Fuel != 0 {
		t.Errorf("Fuel = %v, want 0", ship.Fuel)
	}
}

func TestShip_ThrustClampsFuelAtZero(t *testing.T) {
	tests := []struct {
		name  string
		fuel  float64
		boost bool
	}{
		{"below_consumption", 0.1, false},
		{"below_boost_cost", 0.5, true},
		{"exactly_consumption", 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewShip(1, physics.Vector2D{}, DefaultShipStats())
			ship.Fuel = tt.fuel

			if !ship.Thrust(false, tt.boost) {
				t.Fatal("Thrust() = false with fuel remaining")
			}
			if ship.Fuel != 0 {
				t.Errorf("Fuel = %v, want 0", ship.Fuel)
			}
			if !ship.OutOfFuel() {
				t.Error("OutOfFuel() = false")
			}
		})
	}
}

func TestShip_FuelStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	ship := NewShip(1, physics.Vector2D{}, DefaultShipStats())

	for i := 0; i < 20000; i++ {
		switch rng.IntN(10) {
		case 0:
			ship.Refuel(200)
		default:
			ship.Thrust(rng.IntN(2) == 0, rng.IntN(2) == 0)
		}
		if ship.Fuel < 0 || ship.Fuel > ship.Stats.MaxFuel {
			t.Fatalf("step %d: fuel %v outside [0, %v]", i, ship.Fuel, ship.Stats.MaxFuel)
		}
	}
}

func TestShip_Refuel(t *testing.T) {
	tests := []struct {
		name      string
		fuel      float64
		amount    float64
		wantFuel  float64
		wantAdded float64
	}{
		{"caps_at_max", 950, 200, 1000, 50},
		{"plenty_of_room", 100, 200, 300, 200},
		{"already_full", 1000, 200, 1000, 0},
		{"from_empty", 0, 200, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewShip(1, physics.Vector2D{}, DefaultShipStats())
			ship.Fuel = tt.fuel

			added := ship.Refuel(tt.amount)
			if ship.Fuel != tt.wantFuel {
				t.Errorf("Fuel = %v, want %v", ship.Fuel, tt.wantFuel)
			}
			if added != tt.wantAdded {
				t.Errorf("Refuel() = %v, want %v", added, tt.wantAdded)
			}
		})
	}
}

func TestShip_IntegrateWraps(t *testing.T) {
	bounds := physics.Bounds{Width: 1200, Height: 800}
	ship := NewShip(1, physics.Vector2D{X: 1214, Y: 400}, DefaultShipStats())
	ship.Velocity = physics.Vector2D{X: 10}

	ship.Integrate(bounds)

	if ship.Position.X != -15 {
		t.Errorf("Position.X = %v, want -15 after wrapping", ship.Position.X)
	}
	if !near(ship.Velocity.X, 9.8) {
		t.Errorf("Velocity.X = %v, want 9.8", ship.Velocity.X)
	}
	if !near(ship.Speed(), 9.8) {
		t.Errorf("Speed() = %v, want 9.8", ship.Speed())
	}
}

func TestShip_Hull(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		apex    physics.Vector2D
	}{
		{"east", 0, physics.Vector2D{X: 620, Y: 400}},
		{"screen_up", 90, physics.Vector2D{X: 600, Y: 380}},
		{"west", 180, physics.Vector2D{X: 580, Y: 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := NewShip(1, physics.Vector2D{X: 600, Y: 400}, DefaultShipStats())
			ship.Heading = tt.heading
			hull := ship.Hull()

			if !nearVec(hull.A, tt.apex) {
				t.Errorf("apex = %v, want %v", hull.A, tt.apex)
			}
			// base corners are 30 apart and 40 behind the apex
			if w := hull.B.Distance(hull.C); !near(w, 30) {
				t.Errorf("base width = %v, want 30", w)
			}
			mid := hull.B.Add(hull.C).Scale(0.5)
			if l := mid.Distance(hull.A); !near(l, 40) {
				t.Errorf("hull length = %v, want 40", l)
			}
			if !hull.ContainsPoint(ship.Position) {
				t.Error("hull does not contain the ship center")
			}
		})
	}
}

func TestShip_HitsCircle(t *testing.T) {
	ship := NewShip(1, physics.Vector2D{X: 600, Y: 400}, DefaultShipStats())

	// apex at (620,400); a pod just ahead of it
	ahead := physics.Circle{Center: physics.Vector2D{X: 624, Y: 400}, Radius: 5}
	if !ship.HitsCircle(ahead) {
		t.Error("HitsCircle() = false for a pod touching the apex")
	}

	// beside the apex, inside the bounding circle but outside the hull
	beside := physics.Circle{Center: physics.Vector2D{X: 615, Y: 414}, Radius: 2}
	if ship.HitsCircle(beside) {
		t.Error("HitsCircle() = true for a pod clear of the hull")
	}

	ship.Heading = 90
	if ship.HitsCircle(ahead) {
		t.Error("HitsCircle() should follow the heading")
	}
}
