package creature

import "github.com/san-kum/crittersim/internal/geom"

// Playground is the usable simulation area. Bounds are the inner edges
// nodes are clamped against; ImpactDamping scales the implicit velocity
// kept after a wall bounce.
type Playground struct {
	Bounds        geom.Rect
	ImpactDamping float64
}

// NewPlayground centers a width×height area on the origin and insets it
// by margin on every side.
func NewPlayground(width, height, margin float64) Playground {
	hw := width/2 - margin
	hh := height/2 - margin
	return Playground{
		Bounds:        geom.NewRect(-hw, -hh, hw, hh),
		ImpactDamping: 0.5,
	}
}

func (p Playground) Center() geom.Vec2 { return p.Bounds.Center() }

// SafeBounds insets the usable area by r so a circle of that radius fits
// entirely inside.
func (p Playground) SafeBounds(r float64) geom.Rect { return p.Bounds.Inset(r) }
