package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulum/internal/scene"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 300
)

type TickMsg time.Time

type Options struct {
	FPS         int
	PauseOnBlur bool
	Logger      *log.Logger
}

// Model is the bubbletea front end for a Scene. Each tick runs exactly one
// Scene frame.
type Model struct {
	scene       *scene.Scene
	layout      scene.Layout
	canvas      *Canvas
	readout     scene.Readout
	history     []float64
	interval    time.Duration
	pauseOnBlur bool
	showHelp    bool
	logger      *log.Logger
}

func NewModel(s *scene.Scene, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	canvas := NewCanvas(width, height)
	pw, ph := canvas.PixelSize()

	return Model{
		scene:       s,
		layout:      scene.NewLayout(float64(pw), float64(ph)),
		canvas:      canvas,
		history:     make([]float64, 0, historyCapacity),
		interval:    time.Second / time.Duration(fps),
		pauseOnBlur: opts.PauseOnBlur,
		logger:      logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and runs a frame on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.scene.Toggle()
			m.logger.Info("playback toggled", "state", m.scene.Clock().State())
		case "r":
			m.scene.Reset()
			m.history = m.history[:0]
			m.logger.Info("pendulum reset")
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.BlurMsg:
		if m.pauseOnBlur && m.scene.Clock().IsPlaying() {
			m.scene.ForcePause()
			m.logger.Info("paused on focus loss")
		}
	case TickMsg:
		m.frame()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) frame() {
	m.readout = m.scene.Frame()
	if m.readout.Playing {
		m.history = append(m.history, m.readout.LinearVelocity)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
	m.draw()
}

func (m *Model) draw() {
	m.canvas.Clear()
	pivot := m.layout.Pivot
	ball := m.layout.Ball(m.readout.Radians)
	if math.IsNaN(ball.X()) || math.IsNaN(ball.Y()) {
		return
	}

	m.canvas.Segment(pivot, ball)
	m.canvas.Disc(pivot, 1)
	m.canvas.Disc(ball, m.layout.Scale/15+1)
}

// View renders the pendulum next to the numeric readout.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("PENDULUM") + "\n")
	if m.readout.Playing {
		s.WriteString(playingStyle.Render("PLAYING") + "\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}
	s.WriteString(readoutStyle.Render(FormatReadout(m.readout)) + "\n")
	s.WriteString(fmt.Sprintf("%15s%5.1f deg\n", " Angle: ", m.readout.Degrees))

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("linear velocity (m/s)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("Space  play / pause\nR      reset pendulum\n?      toggle help\nQ/Esc  quit"))
	} else {
		s.WriteString(helpStyle.Render("SP:Play/Pause R:Reset ?:Help Q:Quit"))
	}

	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run blocks until the user quits. Focus reporting is enabled so losing the
// terminal's focus can pause playback.
func Run(s *scene.Scene, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
