package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	apperrors "github.com/byhongda/xdot/pkg/errors"
	"github.com/byhongda/xdot/pkg/layout"
	"github.com/byhongda/xdot/pkg/render"
	"github.com/byhongda/xdot/pkg/viewport"
)

// Status bar styles
var (
	statusBarStyle  = lipgloss.NewStyle().Foreground(colorWhite).Background(colorDim)
	statusNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Background(colorDim)
	statusErrStyle  = lipgloss.NewStyle().Foreground(colorRed).Background(colorDim)
)

// Terminal cells are roughly twice as tall as wide; half-block
// rendering recovers the vertical resolution, so one text row holds
// two pixel rows.
const rowsPerCell = 2

type tickMsg time.Time

type layoutMsg layout.Result

// viewerModel is the bubbletea model for the interactive viewer. Mouse
// and key events feed the drag controller; layout runs arrive
// asynchronously from the engine; animation frames are driven by tick
// messages scheduled only while an animation is running.
type viewerModel struct {
	ctx    context.Context
	engine *layout.Engine
	logger *log.Logger
	src    []byte
	name   string

	ctrl       *viewport.Controller
	cols, rows int
	generation string
	status     string
	errStatus  bool
	loading    bool
	ticking    bool
	fitted     bool
}

func newViewerModel(ctx context.Context, engine *layout.Engine, logger *log.Logger, src []byte, name string) *viewerModel {
	return &viewerModel{
		ctx:    ctx,
		engine: engine,
		logger: logger,
		src:    src,
		name:   name,
		ctrl:   viewport.NewController(viewport.New()),
		fitted: true,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return m.submitLayout()
}

func (m *viewerModel) submitLayout() tea.Cmd {
	m.loading = true
	ch := m.engine.Submit(m.ctx, m.src)
	return func() tea.Msg {
		return layoutMsg(<-ch)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(viewport.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ensureTicking schedules the next animation frame if one is needed and
// none is already scheduled.
func (m *viewerModel) ensureTicking() tea.Cmd {
	if m.ticking || !m.ctrl.Animating() {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
		m.ctrl.View.Resize(float64(m.pixelWidth()), float64(m.pixelHeight()))
		if m.fitted {
			m.ctrl.ZoomFit()
		}
		return m, nil

	case layoutMsg:
		m.loading = false
		if msg.Err != nil {
			// The previous scene stays up; only the status changes.
			m.logger.Warn("layout failed", "error", msg.Err)
			m.setError(apperrors.UserMessage(msg.Err))
			return m, nil
		}
		m.generation = msg.ID
		m.ctrl.SetGraph(msg.Graph)
		m.fitted = true
		m.setStatus("")
		return m, nil

	case tickMsg:
		if m.ctrl.Tick(time.Time(msg)) {
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *viewerModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.ctrl.Abort()
	case "left", "h":
		m.pan(-1, 0)
	case "right", "l":
		m.pan(1, 0)
	case "up", "k":
		m.pan(0, -1)
	case "down", "j":
		m.pan(0, 1)
	case "+", "=":
		m.zoom(1)
	case "-":
		m.zoom(-1)
	case "f":
		m.ctrl.ZoomFit()
		m.fitted = true
	case "1":
		m.ctrl.Zoom100()
		m.fitted = false
	case "r":
		return m, m.submitLayout()
	}
	return m, nil
}

func (m *viewerModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X)
	y := float64(msg.Y * rowsPerCell)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.zoom(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.zoom(-1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.fitted = false
		m.ctrl.Press(mouseButton(msg.Button), msg.Ctrl, msg.Shift, x, y)
	case tea.MouseActionMotion:
		m.ctrl.Motion(x, y)
	case tea.MouseActionRelease:
		if u := m.ctrl.Release(x, y); u != nil {
			m.setStatus("clicked " + u.URL)
		}
		return m, m.ensureTicking()
	}
	return m, nil
}

func mouseButton(b tea.MouseButton) viewport.Button {
	switch b {
	case tea.MouseButtonLeft:
		return viewport.ButtonLeft
	case tea.MouseButtonMiddle:
		return viewport.ButtonMiddle
	case tea.MouseButtonRight:
		return viewport.ButtonRight
	}
	return viewport.ButtonNone
}

func (m *viewerModel) pan(dx, dy int) {
	m.ctrl.KeyPan(dx, dy)
	m.fitted = false
}

func (m *viewerModel) zoom(dir int) {
	m.ctrl.KeyZoom(dir)
	m.fitted = false
}

func (m *viewerModel) setStatus(s string) {
	m.status = s
	m.errStatus = false
}

func (m *viewerModel) setError(s string) {
	m.status = s
	m.errStatus = true
}

func (m *viewerModel) pixelWidth() int { return m.cols }

func (m *viewerModel) pixelHeight() int {
	h := (m.rows - 1) * rowsPerCell // one row reserved for the status bar
	if h < rowsPerCell {
		h = rowsPerCell
	}
	return h
}

func (m *viewerModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}

	var band *render.Band
	if x1, y1, x2, y2, ok := m.ctrl.RubberBand(); ok {
		band = &render.Band{X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	img := render.Frame(m.ctrl.Graph(), m.ctrl.View, m.ctrl.Highlight(), band, m.pixelWidth(), m.pixelHeight())

	return render.Cells(img) + "\n" + m.statusBar()
}

func (m *viewerModel) statusBar() string {
	g := m.ctrl.Graph()
	left := statusNameStyle.Render(m.name) + statusBarStyle.Render(
		fmt.Sprintf("  %d nodes, %d edges  %.0f%%", len(g.Nodes), len(g.Edges), m.ctrl.View.Zoom*100))

	right := ""
	switch {
	case m.loading:
		right = statusBarStyle.Render("laying out...")
	case m.errStatus:
		right = statusErrStyle.Render(m.status)
	case m.status != "":
		right = statusBarStyle.Render(m.status)
	case m.ctrl.HoverURL() != "":
		right = statusBarStyle.Render(m.ctrl.HoverURL())
	}

	gap := m.cols - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	pad := statusBarStyle.Render(fmt.Sprintf("%*s", gap, ""))
	return left + pad + right
}
