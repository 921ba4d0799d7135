// Package viz renders a running simulation in the terminal: speed and
// rolling-speed traces with the live contact mode of each channel.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rollslip/rollslip/internal/contact"
	"github.com/rollslip/rollslip/internal/dynamics"
)

const (
	graphWidth      = 72
	graphHeight     = 10
	historyCapacity = 600
	maxStepsPerTick = 500
)

type TickMsg time.Time

// Model steps the simulation on a frame tick and keeps a bounded
// history of the traces it draws. The stepping mirrors sim.Simulator:
// friction from the previous step's increments, then the kinematics
// update.
type Model struct {
	params  contact.Params
	stepper dynamics.Stepper
	drive   dynamics.Drive

	body    dynamics.BodyState
	prev    dynamics.BodyState
	cs      contact.State
	initial dynamics.BodyState

	t, dt    float64
	duration float64
	fps      int
	running  bool

	speedHist []float64
	rollHist  []float64
	lastLoad  dynamics.Load
}

func NewModel(params contact.Params, stepper dynamics.Stepper, drv dynamics.Drive,
	init dynamics.BodyState, dt, duration float64, fps int) Model {
	return Model{
		params:    params,
		stepper:   stepper,
		drive:     drv,
		body:      init,
		prev:      init,
		initial:   init,
		dt:        dt,
		duration:  duration,
		fps:       fps,
		running:   true,
		speedHist: make([]float64, 0, historyCapacity),
		rollHist:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.body = m.initial
			m.prev = m.initial
			m.cs = contact.State{}
			m.t = 0
			m.speedHist = m.speedHist[:0]
			m.rollHist = m.rollHist[:0]
		}
	case TickMsg:
		if m.running && m.t < m.duration {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs enough steps to keep the view near real time.
func (m *Model) advance() {
	steps := int(1 / (float64(m.fps) * m.dt))
	if steps < 1 {
		steps = 1
	}
	if steps > maxStepsPerTick {
		steps = maxStepsPerTick
	}

	for i := 0; i < steps && m.t < m.duration; i++ {
		dx := m.body.X - m.prev.X
		dtheta := m.body.Theta - m.prev.Theta

		var reaction contact.Reaction
		m.cs, reaction = m.params.Evaluate(m.cs, dx, dtheta, m.body.Omega, m.dt)

		force, torque := m.drive.Apply(m.body, m.t)
		m.lastLoad = dynamics.Load{
			Friction: reaction.Force, Rolling: reaction.Torque,
			Drive: force, DriveTorque: torque,
		}

		m.prev = m.body
		m.body = m.stepper.Step(m.params, m.body, m.lastLoad, m.dt)
		m.t += m.dt
	}

	m.speedHist = append(m.speedHist, m.body.V)
	m.rollHist = append(m.rollHist, m.body.Omega*m.params.Radius)
	if len(m.speedHist) > historyCapacity {
		m.speedHist = m.speedHist[1:]
		m.rollHist = m.rollHist[1:]
	}
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("rolling contact  t=%.3fs / %.1fs", m.t, m.duration))

	var graph string
	if len(m.speedHist) > 1 {
		graph = asciigraph.PlotMany(
			[][]float64{m.speedHist, m.rollHist},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("v (m/s) and ω·r (m/s)"),
		)
	}

	stats := statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		statLine("v", "%.4f m/s", m.body.V),
		statLine("ω·r", "%.4f m/s", m.body.Omega*m.params.Radius),
		statLine("friction", "%.3f N", m.lastLoad.Friction),
		statLine("rolling", "%.4f N·m", m.lastLoad.Rolling),
		labelStyle.Render("slide")+modeBadge(m.cs.SlideMode),
		labelStyle.Render("roll")+modeBadge(m.cs.RollMode),
	))

	body := lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(graph), stats)
	help := helpStyle.Render("space pause · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

func statLine(label, format string, v float64) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, v))
}

func modeBadge(m contact.Mode) string {
	if m == contact.Slip {
		return slipStyle.Render("SLIP")
	}
	return stickStyle.Render("STICK")
}

// Run starts the live view and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
