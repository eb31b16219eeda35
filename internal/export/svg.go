// Package export renders worlds and recorded runs to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

const (
	background  = "#0a0a0a"
	borderColor = "#666688"
	linkColor   = "#444466"
	normalColor = "#00ff88"
	anchorColor = "#00ccff"
	limbColor   = "#ffcc00"
	targetColor = "#ff4444"
)

// WorldSVG renders a post-frame snapshot of the world: the playground
// border, constraint segments, limb chains, step targets and every node
// as a kind-colored circle. World y points up; the viewport flips it.
func WorldSVG(w *creature.World, width, height int) string {
	b := w.Playground.Bounds
	pad := 10.0
	spanX := b.Width() + 2*pad
	spanY := b.Height() + 2*pad

	px := func(x float64) float64 {
		return (x - b.Min.X + pad) / spanX * float64(width)
	}
	py := func(y float64) float64 {
		return float64(height) - (y-b.Min.Y+pad)/spanY*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>
`, px(b.Min.X), py(b.Max.Y), b.Width()/spanX*float64(width), b.Height()/spanY*float64(height), borderColor))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, linkColor))
	for _, c := range w.Constraints {
		a, bn := w.Nodes[c.A].Pos, w.Nodes[c.B].Pos
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, px(a.X), py(a.Y), px(bn.X), py(bn.Y)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="1.5">
`, limbColor))
	for li := range w.Limbs {
		l := &w.Limbs[li]
		sb.WriteString(`<polyline points="`)
		body := w.Nodes[l.Body].Pos
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(body.X), py(body.Y)))
		for _, j := range l.Joints {
			p := w.Nodes[j].Pos
			sb.WriteString(fmt.Sprintf(" %.1f,%.1f", px(p.X), py(p.Y)))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">
`, targetColor))
	for li := range w.Limbs {
		t := w.Limbs[li].Target
		x, y := px(t.X), py(t.Y)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x-3, y, x+3, y, x, y-3, x, y+3))
	}
	sb.WriteString("</g>\n")

	for i := range w.Nodes {
		n := &w.Nodes[i]
		color := normalColor
		switch n.Kind {
		case creature.KindAnchor:
			color = anchorColor
		case creature.KindLimb:
			color = limbColor
		}
		r := n.Radius / spanX * float64(width)
		if r < 1 {
			r = 1
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>
`, px(n.Pos.X), py(n.Pos.Y), r, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrailSVG draws the recorded path of one node as a polyline, bounds
// fit to the trail with 10% padding.
func TrailSVG(states []sim.State, node, width, height int) string {
	xi, yi := 2*node, 2*node+1
	points := make([][2]float64, 0, len(states))
	for _, s := range states {
		if yi >= len(s) {
			continue
		}
		points = append(points, [2]float64{s[xi], s[yi]})
	}
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, anchorColor))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
