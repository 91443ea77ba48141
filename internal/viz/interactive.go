package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/xpbd/internal/config"
	"github.com/san-kum/xpbd/internal/scene"
)

var sceneInfo = map[string]string{
	"cord": "hanging chain of links", "cloth": "pinned cloth grid", "clothdrop": "cloth dropped onto a sphere",
	"clothturn": "cloth rolled between cylinders", "spheres": "colliding sphere pile", "softbody": "volume-preserving tetrahedral soft body",
	"softball": "pressurized soft balloon", "rigidbody": "shape-matched rigid cube", "fluid": "SPH fluid block",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type model struct {
	state, cursor int
	scenes        []string
	selected      string
	paramNames    []string
	params        map[string]float64
	paramCursor   int
	width, height int
	liveModel     Model
}

// NewInteractiveApp builds the menu -> config -> live-simulation flow,
// mirroring the teacher's three-state model selector shape but picking a
// scene descriptor instead of a dynamical system.
func NewInteractiveApp() *model {
	return &model{
		state:  stateMenu,
		scenes: []string{"cord", "cloth", "clothdrop", "clothturn", "spheres", "softbody", "softball", "rigidbody", "fluid"},
		params: map[string]float64{},
		width:  80, height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.scenes[m.cursor]
		m.state, m.paramCursor = stateConfig, 0
		m.setParamsForScene()
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.params[m.paramNames[m.paramCursor]] -= paramStep(m.paramNames[m.paramCursor])
	case "right", "l":
		m.params[m.paramNames[m.paramCursor]] += paramStep(m.paramNames[m.paramCursor])
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func paramStep(name string) float64 {
	switch name {
	case "n_particles", "count", "w", "h", "nx", "ny", "nz", "subdiv", "mesh_index":
		return 1
	default:
		return 0.05
	}
}

func (m *model) setParamsForScene() {
	switch m.selected {
	case "cord":
		m.paramNames = []string{"n_particles", "distance"}
		m.params["n_particles"], m.params["distance"] = 10, 0.5
	case "cloth":
		m.paramNames = []string{"w", "h", "distance"}
		m.params["w"], m.params["h"], m.params["distance"] = 16, 16, 0.1
	case "clothdrop":
		m.paramNames = []string{"w"}
		m.params["w"] = 20
	case "clothturn":
		m.paramNames = []string{"w", "cylinder_spacing"}
		m.params["w"], m.params["cylinder_spacing"] = 16, 0.5
	case "spheres":
		m.paramNames = []string{"count", "radius"}
		m.params["count"], m.params["radius"] = 50, 0.1
	case "softbody":
		m.paramNames = []string{"radius"}
		m.params["radius"] = 1.0
	case "softball":
		m.paramNames = []string{"pressure"}
		m.params["pressure"] = 2.0
	case "rigidbody":
		m.paramNames = []string{"resolution", "subdiv"}
		m.params["resolution"], m.params["subdiv"] = 0.5, 4
	case "fluid":
		m.paramNames = []string{"nx", "ny", "nz"}
		m.params["nx"], m.params["ny"], m.params["nz"] = 8, 8, 8
	}
}

func (m *model) start() tea.Cmd {
	var sc scene.Scene
	switch m.selected {
	case "cord":
		sc = scene.NewCordScene(scene.Cord{NParticles: int(m.params["n_particles"]), Distance: m.params["distance"]})
	case "cloth":
		sc = scene.NewClothScene(scene.Cloth{W: int(m.params["w"]), H: int(m.params["h"]), Distance: m.params["distance"], Bending: true})
	case "clothdrop":
		sc = scene.NewClothDropScene(scene.ClothDrop{W: int(m.params["w"])})
	case "clothturn":
		sc = scene.NewClothTurnScene(scene.ClothTurn{W: int(m.params["w"]), CylinderSpacing: m.params["cylinder_spacing"]})
	case "spheres":
		sc = scene.NewSpheresScene(scene.Spheres{Count: int(m.params["count"]), Radius: m.params["radius"]})
	case "softbody":
		sc = scene.NewSoftBodyScene(scene.SoftBody{Radius: m.params["radius"]})
	case "softball":
		sc = scene.NewSoftBallScene(scene.SoftBall{Pressure: m.params["pressure"]})
	case "rigidbody":
		sc = scene.NewRigidBodyScene(scene.RigidBody{Resolution: m.params["resolution"], Subdiv: int(m.params["subdiv"])})
	case "fluid":
		sc = scene.NewFluidScene(scene.Fluid{Nx: int(m.params["nx"]), Ny: int(m.params["ny"]), Nz: int(m.params["nz"])})
	default:
		sc = scene.NewCordScene(scene.Cord{NParticles: 10, Distance: 0.5})
	}
	m.liveModel = NewModel(m.selected, sc, config.DefaultDt)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("XPBD") + "\n    " + sub.Render("position-based dynamics playground") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.scenes {
		desc := sceneInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-12s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("j/k") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" navigate  ") + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("enter") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" select  ") + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("q") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(m.selected)) + "\n    " + sub.Render(sceneInfo[m.selected]) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		val := m.params[name]
		valStr := fmt.Sprintf("%8.3f", val)
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-16s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-16s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(valStr)))
		}
	}
	b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("j/k") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" select  ") + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("h/l") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" adjust  ") + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("s") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" start  ") + lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true).Render("esc") + lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(" back") + "\n")
	return b.String()
}

// RunInteractive starts the full-screen menu -> config -> live TUI flow.
func RunInteractive() error { return tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Start() }
