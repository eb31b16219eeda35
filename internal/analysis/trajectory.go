package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/crittersim/internal/geom"
	"github.com/san-kum/crittersim/internal/sim"
)

// Trajectory is one node's recorded path across a run.
type Trajectory struct {
	Node   int
	Points []geom.Vec2
}

// TrajectoryOf extracts a node's positions from flattened run states.
// Returns nil when the node index falls outside any snapshot.
func TrajectoryOf(states []sim.State, node int) *Trajectory {
	if node < 0 {
		return nil
	}
	xi, yi := 2*node, 2*node+1
	tr := &Trajectory{Node: node, Points: make([]geom.Vec2, 0, len(states))}
	for _, s := range states {
		if yi >= len(s) {
			return nil
		}
		tr.Points = append(tr.Points, geom.V(s[xi], s[yi]))
	}
	return tr
}

// Component extracts a single flattened coordinate as a time series.
// Coordinate 2i is node i's x, 2i+1 its y.
func Component(states []sim.State, idx int) []float64 {
	if idx < 0 {
		return nil
	}
	out := make([]float64, 0, len(states))
	for _, s := range states {
		if idx >= len(s) {
			return nil
		}
		out = append(out, s[idx])
	}
	return out
}

// Section is a stroboscopic sample of a run: points recorded whenever a
// chosen coordinate crosses a threshold going up.
type Section struct {
	Points []geom.Vec2
}

// CrossingSection records (recordX, recordY) every time states[crossIdx]
// crosses threshold from below. Gait cycles show up as tight clusters.
func CrossingSection(states []sim.State, crossIdx int, threshold float64, recordX, recordY int) *Section {
	if len(states) == 0 {
		return &Section{}
	}
	for _, idx := range []int{crossIdx, recordX, recordY} {
		if idx < 0 || idx >= len(states[0]) {
			return nil
		}
	}

	section := &Section{}
	prev := states[0][crossIdx]
	for _, s := range states[1:] {
		curr := s[crossIdx]
		if prev < threshold && curr >= threshold {
			section.Points = append(section.Points, geom.V(s[recordX], s[recordY]))
		}
		prev = curr
	}
	return section
}

// TrajectoryToASCII renders the path as a dot plot with axes.
func TrajectoryToASCII(tr *Trajectory, width, height int) string {
	if tr == nil {
		return ""
	}
	return scatterToASCII(tr.Points, width, height)
}

// SectionToASCII renders crossing samples as a dot plot.
func SectionToASCII(s *Section, width, height int) string {
	if s == nil || len(s.Points) == 0 {
		return "no crossings detected"
	}
	return scatterToASCII(s.Points, width, height)
}

func scatterToASCII(points []geom.Vec2, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes, where they cross the visible window.
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
