// Package geom holds the 2D math the simulation needs.
package geom

import "math"

// Vec2 is a point or direction on the arena plane
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) DistSq(o Vec2) float64 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y
}

// Normalize returns the unit vector, or the zero vector for zero input
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Polar returns the point at angle (degrees) and radius around the origin
func Polar(degrees, radius float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{math.Cos(rad) * radius, math.Sin(rad) * radius}
}

// SegmentDist is the distance from p to the segment a-b
func SegmentDist(a, b, p Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
