package geom

import "math"

// Rect is an axis-aligned box given by its min and max corners.
type Rect struct {
	Min, Max Vec2
}

func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: Vec2{minX, minY}, Max: Vec2{maxX, maxY}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPoint moves p to the nearest point inside r.
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.Min.X, r.Max.X), Clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// Inset shrinks r by d on every side. Sides may cross for large d; callers
// clamp against that where it matters.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X + d, r.Min.Y + d},
		Max: Vec2{r.Max.X - d, r.Max.Y - d},
	}
}

// ClipRay returns the farthest point along the segment start→end that
// still lies inside r (slab test per axis). A start outside r degrades to
// clamping the end point.
func (r Rect) ClipRay(start, end Vec2) Vec2 {
	if !r.Contains(start) {
		return r.ClampPoint(end)
	}
	d := end.Sub(start)
	t := 1.0
	if d.X > epsilon {
		t = math.Min(t, (r.Max.X-start.X)/d.X)
	} else if d.X < -epsilon {
		t = math.Min(t, (r.Min.X-start.X)/d.X)
	}
	if d.Y > epsilon {
		t = math.Min(t, (r.Max.Y-start.Y)/d.Y)
	} else if d.Y < -epsilon {
		t = math.Min(t, (r.Min.Y-start.Y)/d.Y)
	}
	if t < 0 {
		t = 0
	}
	// Rounding in start+d*t can overshoot the wall by an ulp.
	return r.ClampPoint(start.Add(d.Scale(t)))
}
