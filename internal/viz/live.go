package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/xpbd/internal/scene"
)

const maxHistory = 120

type tickMsg time.Time

// Model drives a scene.Scene inside a bubbletea program: it ticks the
// solver forward, projects the particle cloud through a Camera onto a
// braille Canvas, and tracks a scalar (kinetic energy, summed over a
// tick's position deltas) as an asciigraph sparkline.
type Model struct {
	sceneName string
	sc        scene.Scene
	dt        float64

	canvas *Canvas
	camera *Camera
	width  int
	height int

	paused  bool
	frame   int
	theme   Theme
	themeIx int
	help    bool

	prevPositions []r3.Vector
	energy        float64
	history       []float64

	grabIx  int
	grabbed bool
	dragPos r3.Vector
}

// NewModel builds a live-visualization Model wrapping an already-built scene.
func NewModel(name string, s scene.Scene, dt float64) Model {
	cam := NewCamera()
	cam.RotateX(-0.3)
	cam.RotateY(0.5)
	return Model{
		sceneName: name,
		sc:        s,
		dt:        dt,
		canvas:    NewCanvas(60, 24),
		camera:    cam,
		width:     80,
		height:    30,
		theme:     CurrentTheme,
		themeIx:   indexOfTheme(CurrentTheme),
	}
}

func indexOfTheme(t Theme) int {
	for i, th := range Themes {
		if th.Name == t.Name {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return tick(m.dt)
}

func tick(dt float64) tea.Cmd {
	d := time.Duration(dt * float64(time.Second))
	if d <= 0 {
		d = time.Millisecond * 16
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cw, ch := (m.width-4)/2, (m.height-14)/2
		if cw < 10 {
			cw = 10
		}
		if ch < 6 {
			ch = 6
		}
		m.canvas = NewCanvas(cw, ch)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if !m.paused {
			m.step()
		}
		return m, tick(m.dt)
	}
	return m, nil
}

func (m *Model) step() {
	positions := m.sc.Positions()
	m.prevPositions = append(m.prevPositions[:0], positions...)
	m.sc.Step(m.dt)
	m.frame++

	var e float64
	for i, p := range m.sc.Positions() {
		if i >= len(m.prevPositions) {
			break
		}
		d := p.Sub(m.prevPositions[i])
		e += d.Dot(d)
	}
	if m.dt > 0 {
		e /= m.dt * m.dt
	}
	m.energy = e
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "r":
		m.sc.Reset()
		m.prevPositions = nil
		m.history = nil
	case "?":
		m.help = !m.help
	case "t":
		m.themeIx = (m.themeIx + 1) % len(Themes)
		m.theme = Themes[m.themeIx]
		CurrentTheme = m.theme
	case "left":
		m.camera.RotateY(-0.15)
	case "right":
		m.camera.RotateY(0.15)
	case "up":
		m.camera.RotateX(-0.15)
	case "down":
		m.camera.RotateX(0.15)
	case "+", "=":
		m.camera.ZoomIn()
	case "-":
		m.camera.ZoomOut()
	case "g":
		m.toggleGrab()
	case "n":
		if !m.grabbed {
			if n := len(m.sc.Positions()); n > 0 {
				m.grabIx = (m.grabIx + 1) % n
			}
		}
	case "w":
		m.nudge(r3.Vector{Y: 0.1})
	case "s":
		m.nudge(r3.Vector{Y: -0.1})
	case "a":
		m.nudge(r3.Vector{X: -0.1})
	case "d":
		m.nudge(r3.Vector{X: 0.1})
	case "e":
		m.nudge(r3.Vector{Z: 0.1})
	case "c":
		m.nudge(r3.Vector{Z: -0.1})
	}
	return m, nil
}

// toggleGrab pins or releases the currently highlighted particle. A ray
// with origin exactly at the particle's own position always lands within
// the pick threshold, so the cycle key (n) alone decides which particle
// a press of g takes hold of.
func (m *Model) toggleGrab() {
	if m.grabbed {
		m.sc.Release()
		m.grabbed = false
		return
	}
	positions := m.sc.Positions()
	if len(positions) == 0 {
		return
	}
	if m.grabIx >= len(positions) {
		m.grabIx = 0
	}
	p := positions[m.grabIx]
	if idx := m.sc.Grab(p, r3.Vector{X: 1}); idx != nil {
		m.grabbed = true
		m.dragPos = p
	}
}

// nudge moves the grabbed particle by delta. toggleGrab always grabs with
// a ray whose origin sits exactly on the particle, so its recorded depth D
// is zero; MoveGrabbed then places the particle at origin + D*dir = origin
// regardless of dir, so passing dragPos as the new ray origin lands the
// particle exactly there and repeated nudges accumulate like a drag.
func (m *Model) nudge(delta r3.Vector) {
	if !m.grabbed {
		return
	}
	m.dragPos = m.dragPos.Add(delta)
	m.sc.MoveGrabbed(m.dragPos, r3.Vector{X: 1})
}

func (m Model) View() string {
	m.canvas.Clear()
	wf := NewWireframe()
	for _, p := range m.sc.Positions() {
		wf.AddPoint(Vec3{X: p.X, Y: p.Y, Z: p.Z}, '*')
	}
	Render3D(m.canvas, wf, m.camera)

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(strings.ToUpper(m.sceneName))
	b.WriteString(GlassPanel.Render(m.canvas.String()))
	b.WriteString("\n")

	status := StatusRunning.Render("running")
	if m.paused {
		status = StatusPaused.Render("paused")
	}
	grab := "free"
	if m.grabbed {
		grab = fmt.Sprintf("grabbed #%d", m.grabIx)
	}

	stats := fmt.Sprintf(
		"%s  %s\n%s %d   %s %.3f   %s %s   %s %s\n%s\n%s",
		title, status,
		MetricLabel.Render("frame"), m.frame,
		MetricLabel.Render("dt"), m.dt,
		MetricLabel.Render("grab"), grab,
		MetricLabel.Render("ke"), MetricValue.Render(fmt.Sprintf("%.2f", m.energy)),
		Separator(40),
		asciigraph.Plot(nonEmpty(m.history), asciigraph.Height(6), asciigraph.Width(40), asciigraph.Caption("kinetic energy proxy")),
	)
	b.WriteString(stats)
	b.WriteString("\n")
	b.WriteString(KeyHint.Render("q quit  space pause  r reset  arrows orbit  +/- zoom  g grab  n cycle  wasdec drag  t theme  ? help"))

	if m.help {
		b.WriteString("\n\n" + BoxWithTitle("help", helpText, 50))
	}

	return b.String()
}

const helpText = `q / ctrl+c  quit
space       pause or resume the solver
r           reset the scene to its initial state
arrows      orbit the camera around the particle cloud
+ / -       zoom the camera in or out
g           pin or release the highlighted particle
n           cycle which particle g will grab next
w a s d e c drag the grabbed particle along y/x/z
t           cycle color theme
?           toggle this help panel`

func nonEmpty(v []float64) []float64 {
	if len(v) == 0 {
		return []float64{0}
	}
	return v
}
