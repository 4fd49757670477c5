// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping. Touching circles do not collide.
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contains reports whether point lies strictly inside the circle.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) < c.Radius
}

// Triangle is a convex three-point hull, used for the ship.
type Triangle struct {
	A, B, C Vector2D
}

// Vertices returns the triangle corners in declaration order.
func (t Triangle) Vertices() [3]Vector2D {
	return [3]Vector2D{t.A, t.B, t.C}
}

// ContainsPoint reports whether p lies inside the triangle or on its boundary.
// Works for either winding order.
func (t Triangle) ContainsPoint(p Vector2D) bool {
	d1 := cross(t.A, t.B, p)
	d2 := cross(t.B, t.C, p)
	d3 := cross(t.C, t.A, p)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// IntersectsCircle reports whether the triangle and the circle overlap: either the
// circle's center is inside the hull, or some edge passes closer to the center
// than the radius.
func (t Triangle) IntersectsCircle(c Circle) bool {
	if t.ContainsPoint(c.Center) {
		return true
	}
	r2 := c.Radius * c.Radius
	for _, edge := range [3][2]Vector2D{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
		closest := ClosestPointOnSegment(edge[0], edge[1], c.Center)
		if closest.Sub(c.Center).LengthSquared() < r2 {
			return true
		}
	}
	return false
}

// BoundingRadius returns the distance from center to the farthest vertex.
func (t Triangle) BoundingRadius(center Vector2D) float64 {
	var r float64
	for _, v := range t.Vertices() {
		if d := v.Distance(center); d > r {
			r = d
		}
	}
	return r
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(a, b, p Vector2D) Vector2D {
	ab := b.Sub(a)
	denom := ab.LengthSquared()
	if denom == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Vector2D) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
