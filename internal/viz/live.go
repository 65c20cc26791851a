package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bubblenav/internal/bubble"
	"github.com/san-kum/bubblenav/internal/nav"
)

const (
	DefaultScale    = 6.0
	DefaultFPS      = 60
	panelWidth      = 36
	headerRows      = 1
	footerRows      = 1
	minCols         = 20
	minRows         = 6
	historyCapacity = 600
)

type TickMsg time.Time

type Options struct {
	FPS    int
	Scale  float64
	Theme  string
	Pages  nav.Navigator
	Logger *log.Logger
}

// Model drives a bubble.World at a fixed frame rate and draws it on a
// braille canvas next to a stats panel.
type Model struct {
	world  *bubble.World
	term   *Terminal
	pages  nav.Navigator
	log    *log.Logger
	canvas *Canvas
	fps    int

	running  bool
	theme    Theme
	styles   styles
	bar      progress.Model
	selected int
	pulse    pulse
	growth   float64
	frozen   []float64
	dest     string
	status   string
}

func NewModel(w *bubble.World, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Pages == nil {
		opts.Pages = nav.NewPages("/", w.Labels())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	term := NewTerminal(opts.Scale)
	w.SetRenderer(term)

	vp := w.Viewport()
	cols := max(1, int(vp.Width/(2*term.Scale)))
	rows := max(1, int(vp.Height/(4*term.Scale)))

	m := Model{
		world:    w,
		term:     term,
		pages:    opts.Pages,
		log:      opts.Logger,
		canvas:   NewCanvas(cols, rows),
		fps:      opts.FPS,
		running:  true,
		selected: -1,
		pulse:    newPulse(opts.FPS),
		frozen:   make([]float64, 0, historyCapacity),
	}
	m.setTheme(GetTheme(opts.Theme))
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = newStyles(t)
	m.bar = progress.New(
		progress.WithScaledGradient(string(t.Secondary), string(t.Success)),
		progress.WithoutPercentage(),
	)
	m.bar.Width = panelWidth - 8
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
			m.world.Reset()
			m.restart()
			m.status = "reset"
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "tab":
			m.cycle(1)
		case "shift+tab":
			m.cycle(-1)
		case "enter":
			if m.selected >= 0 && m.selected < m.world.Len() {
				m.follow(m.selected)
			}
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y-headerRows)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.running && !m.world.AllStopped() {
		m.world.Tick()
		m.frozen = append(m.frozen, float64(m.world.Frozen()))
		if len(m.frozen) > historyCapacity {
			m.frozen = m.frozen[1:]
		}
	}
	m.growth = m.pulse.step()
}

func (m *Model) restart() {
	m.selected = -1
	m.frozen = m.frozen[:0]
}

func (m *Model) cycle(dir int) {
	n := m.world.Len()
	if n == 0 {
		m.selected = -1
		return
	}
	if m.selected < 0 {
		if dir > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
		return
	}
	m.selected = ((m.selected+dir)%n + n) % n
}

// click hit-tests a canvas cell and follows the bubble under it.
func (m *Model) click(col, row int) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	x, y := m.term.CellToPixel(col, row)
	if i := m.world.HitTest(x, y); i >= 0 {
		m.follow(i)
	}
}

// follow navigates to the page behind body i. The world switches to that
// page, so the clicked label drops out and the rest scatter again.
func (m *Model) follow(i int) {
	b := m.world.Body(i)
	m.pulse.kick(b.X, b.Y)

	dest, err := m.pages.Navigate(b.Label)
	if err != nil {
		m.log.Warn("navigation failed", "label", b.Label, "err", err)
		m.status = err.Error()
		return
	}
	m.log.Info("navigate", "label", b.Label, "dest", dest)
	m.dest = dest
	m.status = "→ " + dest
	m.world.Navigate(b.Label)
	m.restart()
}

func (m *Model) resize(width, height int) {
	cols := max(minCols, width-panelWidth)
	rows := max(minRows, height-headerRows-footerRows)
	if cols == m.canvas.Width && rows == m.canvas.Height {
		return
	}
	m.canvas = NewCanvas(cols, rows)
	vp := m.term.ViewportFor(cols, rows)
	m.log.Debug("resize", "cols", cols, "rows", rows, "viewport", vp)
	m.world.Resize(vp)
	m.restart()
}

func (m *Model) draw() {
	m.canvas.Clear()
	r := m.world.Radius()
	m.term.Draw(m.canvas, r)

	rd := int(r / m.term.Scale)
	if m.selected >= 0 && m.selected < m.world.Len() {
		b := m.world.Body(m.selected)
		cx, cy := m.term.ToDots(b.X, b.Y)
		m.canvas.DrawCircle(cx, cy, rd+2)
		if !b.Stopped {
			m.canvas.DrawLine(cx, cy, cx+int(b.VX*20/m.term.Scale), cy+int(b.VY*20/m.term.Scale))
		}
	}
	if m.pulse.active {
		cx, cy := m.term.ToDots(m.pulse.x, m.pulse.y)
		m.canvas.DrawCircle(cx, cy, rd+1+int(m.growth*float64(rd)))
	}
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	page := m.world.CurrentPage()
	if page == "" {
		page = "(none)"
	}
	header := GradientText(" bubblenav ", m.theme.Primary, m.theme.Secondary) + st.label.Render("  page ") + st.value.Render(page)

	canvasView := st.canvas.Render(strings.TrimSuffix(m.canvas.String(), "\n"))

	var s strings.Builder
	status := st.running.Render("RUNNING")
	switch {
	case m.world.AllStopped():
		status = st.running.Render("SETTLED")
	case !m.running:
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(st.header.Render(status) + "\n")

	n, frozen := m.world.Len(), m.world.Frozen()
	row := func(k, v string) { s.WriteString(st.label.Render(k) + st.value.Render(v) + "\n") }
	row("Tick", fmt.Sprintf("%d", m.world.Ticks()))
	row("Bubbles", fmt.Sprintf("%d", n))
	row("Frozen", fmt.Sprintf("%d/%d", frozen, n))
	row("Viewport", m.world.Viewport().String())
	row("Theme", m.theme.Name)

	frac := 0.0
	if n > 0 {
		frac = float64(frozen) / float64(n)
	}
	s.WriteString("\n" + m.bar.ViewAs(frac) + "\n")

	if len(m.frozen) > 1 {
		chart := asciigraph.Plot(m.frozen,
			asciigraph.Height(4),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("frozen"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n")
	if m.selected >= 0 && m.selected < n {
		b := m.world.Body(m.selected)
		s.WriteString(st.active.Render("> "+b.Label) + "\n")
	}
	if m.dest != "" {
		s.WriteString(st.label.Render("Last") + st.link.Render(m.dest) + "\n")
	}

	s.WriteString(st.help.Render("\nclick/enter:open tab:select\nspace:pause r:reset t:theme q:quit"))

	panel := st.panel.Render(s.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, st.help.Render(m.status))
}

func (m Model) Selected() int        { return m.selected }
func (m Model) Running() bool        { return m.running }
func (m Model) Dest() string         { return m.dest }
func (m Model) Status() string       { return m.status }
func (m Model) Theme() Theme         { return m.theme }
func (m Model) Canvas() *Canvas      { return m.canvas }
func (m Model) World() *bubble.World { return m.world }
func (m Model) Terminal() *Terminal  { return m.term }

// Run shows the live view until the user quits.
func Run(w *bubble.World, opts Options) error {
	p := tea.NewProgram(NewModel(w, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
