// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a point or displacement in screen space (y grows downward).
type Vector2D struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vector2D) Add(o Vector2D) Vector2D { return Vector2D{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vector2D) Sub(o Vector2D) Vector2D { return Vector2D{v.X - o.X, v.Y - o.Y} }

// Scale returns v*k.
func (v Vector2D) Scale(k float64) Vector2D { return Vector2D{v.X * k, v.Y * k} }

// Dot returns the dot product.
func (v Vector2D) Dot(o Vector2D) float64 { return v.X*o.X + v.Y*o.Y }

// LengthSquared avoids the square root for range comparisons.
func (v Vector2D) LengthSquared() float64 { return v.Dot(v) }

// Length returns |v|.
func (v Vector2D) Length() float64 { return math.Hypot(v.X, v.Y) }

// Distance returns |v-o|.
func (v Vector2D) Distance(o Vector2D) float64 { return v.Sub(o).Length() }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vector2D) Normalize() Vector2D {
	if l := v.Length(); l > 0 {
		return v.Scale(1 / l)
	}
	return Vector2D{}
}

// Angle is atan2(y, x) in radians, in screen axes.
func (v Vector2D) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Rotate turns v by rad radians in screen axes (clockwise on screen).
func (v Vector2D) Rotate(rad float64) Vector2D {
	sin, cos := math.Sincos(rad)
	return Vector2D{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Perp returns the vector rotated a quarter turn, (-y, x).
func (v Vector2D) Perp() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

// FromAngle builds a vector of length mag pointing along rad.
func FromAngle(rad, mag float64) Vector2D {
	sin, cos := math.Sincos(rad)
	return Vector2D{mag * cos, mag * sin}
}

// HeadingVector returns the unit vector for a heading in degrees. Heading 0
// points along +x and positive headings turn toward screen "up" (-y).
func HeadingVector(degrees float64) Vector2D {
	sin, cos := math.Sincos(DegreesToRadians(degrees))
	return Vector2D{cos, -sin}
}

// HeadingOf is the inverse of HeadingVector: the heading in degrees, in
// (-180, 180], that points along v.
func HeadingOf(v Vector2D) float64 {
	return math.Atan2(-v.Y, v.X) * 180 / math.Pi
}

// AngleDelta returns the signed turn in degrees, in [-180, 180), that takes
// heading from to heading to. Positive is counter-clockwise on screen.
func AngleDelta(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
