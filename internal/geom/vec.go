// Package geom provides the 2D vector, angle, and box primitives shared
// by the simulation stages.
package geom

import "math"

const epsilon = 1e-9

type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the unit vector pointing along angle a (radians).
func FromAngle(a float64) Vec2 {
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product, the signed area
// of the parallelogram spanned by v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Length() float64   { return math.Hypot(v.X, v.Y) }
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Distance(o Vec2) float64   { return o.Sub(v).Length() }
func (v Vec2) DistanceSq(o Vec2) float64 { return o.Sub(v).LengthSq() }

// Normalize returns the unit vector in v's direction, or the zero vector
// when v is too short to carry one.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < epsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
