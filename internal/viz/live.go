package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/crittersim/internal/creature"
	"github.com/san-kum/crittersim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// EngineFactory rebuilds the engine for the reset key.
type EngineFactory func() (*sim.Engine, error)

// Model drives a live terminal view of one running world.
type Model struct {
	engine  *sim.Engine
	rebuild EngineFactory
	fps     int
	// frames advanced per display tick so sim time tracks wall time
	stepsPerTick int

	running  bool
	showHelp bool
	err      error

	energyHistory []float64
	sceneName     string
}

// NewModel wraps a freshly built engine. The factory is invoked on
// reset and must return an equivalent engine.
func NewModel(sceneName string, engine *sim.Engine, rebuild EngineFactory, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	dt := engine.Config().Dt
	steps := int(1.0/float64(fps)/dt + 0.5)
	if steps < 1 {
		steps = 1
	}
	return Model{
		engine:        engine,
		rebuild:       rebuild,
		fps:           fps,
		stepsPerTick:  steps,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		sceneName:     sceneName,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if m.rebuild != nil {
				engine, err := m.rebuild()
				if err != nil {
					m.err = err
				} else {
					m.engine = engine
					m.energyHistory = m.energyHistory[:0]
					m.err = nil
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTick; i++ {
				if err := m.engine.Tick(m.engine.Config().Dt); err != nil {
					m.err = err
					break
				}
			}
			m.recordEnergy()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) recordEnergy() {
	w := m.engine.World()
	total := 0.0
	for i := range w.Nodes {
		v := w.Nodes[i].Velocity()
		total += 0.5 * v.LengthSq()
	}
	m.energyHistory = append(m.energyHistory, total)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m Model) View() string {
	w := m.engine.World()
	view := NewView(canvasWidth, canvasHeight, w.Playground.Bounds.Inset(-10))

	view.Border(w.Playground.Bounds)
	for _, c := range w.Constraints {
		view.Segment(w.Nodes[c.A].Pos, w.Nodes[c.B].Pos)
	}
	for li := range w.Limbs {
		l := &w.Limbs[li]
		prev := w.Nodes[l.Body].Pos
		for _, j := range l.Joints {
			view.Segment(prev, w.Nodes[j].Pos)
			prev = w.Nodes[j].Pos
		}
	}
	for i := range w.Nodes {
		n := &w.Nodes[i]
		if n.Kind == creature.KindLimb {
			view.Point(n.Pos)
			continue
		}
		view.CircleAt(n.Pos, n.Radius)
	}

	canvasView := canvasStyle.Render(view.Canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(fmt.Sprintf("ERROR: %v\n\n", m.err))
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	stats := m.engine.LastStats()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.engine.Time())) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Frame())) + "\n")
	s.WriteString(labelStyle.Render("Nodes") + valueStyle.Render(fmt.Sprintf("%d (%d groups)", len(w.Nodes), w.GroupCount())) + "\n")
	s.WriteString(labelStyle.Render("Broad pairs") + valueStyle.Render(fmt.Sprintf("%d", stats.Collision.BroadPairs)) + "\n")
	s.WriteString(labelStyle.Render("Pushes") + valueStyle.Render(fmt.Sprintf("%d", stats.Collision.Pushes)) + "\n")
	s.WriteString(labelStyle.Render("Wall hits") + valueStyle.Render(fmt.Sprintf("%d", stats.Collision.BoundaryHits)) + "\n")
	s.WriteString(labelStyle.Render("Steps mid-air") + valueStyle.Render(fmt.Sprintf("%d / %d", stats.StepsInFlight, len(w.Limbs))) + "\n")

	s.WriteString(helpStyle.Render("\n──────────────────────\nSP:Pause  R:Reset  Q:Quit  ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		help := `
  Space  - pause / resume
  R      - rebuild the scene
  Q      - quit
  ?      - toggle this help
`
		return help + "\n" + mainView
	}
	return mainView
}
