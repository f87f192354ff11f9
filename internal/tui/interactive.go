package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lnls-sirius/trackgo/internal/config"
	"github.com/lnls-sirius/trackgo/internal/orbit"
	"github.com/lnls-sirius/trackgo/internal/track"
	"github.com/lnls-sirius/trackgo/internal/tracker"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"fodo":          "quadrupole focus-defocus cell",
	"bend_achromat": "achromatic bending cell",
}

const (
	modeTrack = "track"
	modeOrbit = "orbit"
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateSim
)

type model struct {
	state    state
	cursor   int
	presets  []string
	selected string

	mode        string
	params      map[string]float64 // rx, px, ry, py, de, dl, turns, rf
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	running bool
	paused  bool

	acc    *track.Accelerator
	traj   []track.Pos
	trace  []float64
	status track.Status
	frame  int

	lastFrame time.Time
	fps       float64
	speed     float64

	width  int
	height int
}

func NewInteractiveApp() *model {
	return &model{
		state:      stateMenu,
		presets:    config.ListLatticePresets(),
		mode:       modeTrack,
		params:     map[string]float64{"rx": 1e-3, "px": 0, "ry": 0, "py": 0, "de": 0, "dl": 0, "turns": 50, "rf": 0},
		paramNames: []string{"rx", "px", "ry", "py", "turns"},
		speed:      1.0,
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim {
			return m, nil
		}
		if m.running && !m.paused {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				dt := now.Sub(m.lastFrame).Seconds()
				if dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			steps := int(m.speed)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps && m.frame < m.frameCount()-1; i++ {
				m.frame++
			}
			if m.frame >= m.frameCount()-1 {
				m.paused = true
			}
		}
		if m.running && m.state == stateSim {
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

func (m model) frameCount() int {
	if m.mode == modeOrbit {
		return len(m.trace)
	}
	return len(m.traj)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.simKey(msg)
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
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.state = stateConfig
		m.paramCursor = 0
	case "m":
		if m.mode == modeTrack {
			m.mode = modeOrbit
		} else {
			m.mode = modeTrack
		}
	}
	return m, nil
}

func (m *model) paramsForMode() {
	if m.mode == modeOrbit {
		m.paramNames = []string{"rx", "px", "ry", "py", "rf"}
	} else {
		m.paramNames = []string{"rx", "px", "ry", "py", "turns"}
	}
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.paramsForMode()
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "escape":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%g", m.params[m.paramNames[m.paramCursor]])
	case "m":
		if m.mode == modeTrack {
			m.mode = modeOrbit
		} else {
			m.mode = modeTrack
		}
	case "s":
		m.start()
		m.state = stateSim
		return m, tea.Batch(tea.ClearScreen, tick())
	case "left", "h":
		m.params[m.paramNames[m.paramCursor]] -= stepFor(m.paramNames[m.paramCursor])
	case "right", "l":
		m.params[m.paramNames[m.paramCursor]] += stepFor(m.paramNames[m.paramCursor])
	}
	return m, nil
}

func stepFor(name string) float64 {
	if name == "turns" {
		return 10
	}
	if name == "rf" {
		return 1
	}
	return 1e-4
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "escape":
		m.running = false
		m.state = stateMenu
		return m, tea.ClearScreen
	case " ", "p":
		m.paused = !m.paused
	case "r":
		m.start()
		return m, tea.ClearScreen
	case "c":
		m.running = false
		m.state = stateConfig
		return m, tea.ClearScreen
	case "+", "=":
		m.speed = math.Min(m.speed*2, 16)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

func (m *model) start() {
	m.acc = config.GetLatticePreset(m.selected)
	m.frame = 0
	m.lastFrame = time.Time{}
	m.speed = 1.0
	m.paused = false
	m.running = true

	guess := track.FromArray([6]float64{m.params["rx"], m.params["px"], m.params["ry"], m.params["py"], m.params["de"], m.params["dl"]})

	switch m.mode {
	case modeOrbit:
		m.acc.CavityOn = m.params["rf"] != 0
		var trace []float64
		_, status := orbit.FindOrbitTrace(m.acc, guess, &trace)
		m.trace, m.status = trace, status
		m.traj = nil
	default:
		turns := int(m.params["turns"])
		if turns < 1 {
			turns = 1
		}
		pos := guess
		var traj []track.Pos
		_, _, status := tracker.RingPass(m.acc, &pos, turns, 0, true, &traj)
		m.traj, m.status = traj, status
		m.trace = nil
	}
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("t r a c k g o") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("      mode: %s (m to toggle)", m.mode)) + "\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	m.paramsForMode()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(presetInfo[m.selected]) + "  " + magenta.Render(m.mode) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%10.3g", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  m mode  s start  esc back") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	cw := m.width - 6
	ch := m.height - 12
	if cw < 50 {
		cw = 50
	}
	if ch < 12 {
		ch = 12
	}

	canvas := make([][]rune, ch)
	for i := range canvas {
		canvas[i] = make([]rune, cw)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	if m.mode == modeOrbit {
		m.drawConvergence(canvas, cw, ch)
	} else {
		m.drawPhaseSpace(canvas, cw, ch)
	}

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.selected), statusText, dim.Render(m.mode)))

	total := m.frameCount()
	progress := 0.0
	if total > 1 {
		progress = float64(m.frame) / float64(total-1)
	}
	barWidth := 36
	filled := int(progress * float64(barWidth))
	frameStr := fmt.Sprintf("%d/%d", m.frame, total-1)
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s  %s\n\n", bar, dim.Render(frameStr), dim.Render(fmt.Sprintf("%.0ffps", m.fps))))

	for _, row := range canvas {
		b.WriteString("   " + string(row) + "\n")
	}

	if m.mode == modeOrbit {
		if m.frame < len(m.trace) {
			b.WriteString(fmt.Sprintf("\n   residual %s\n", white.Render(fmt.Sprintf("%.3e", m.trace[m.frame]))))
		}
	} else if m.frame < len(m.traj) {
		p := m.traj[m.frame]
		b.WriteString(fmt.Sprintf("\n   rx=%s ry=%s de=%s\n",
			white.Render(fmt.Sprintf("%.3e", p.Rx)),
			white.Render(fmt.Sprintf("%.3e", p.Ry)),
			white.Render(fmt.Sprintf("%.3e", p.De))))
	}
	if m.frame >= total-1 && total > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("   final status: %s\n", m.status)))
	}

	b.WriteString("\n" + dim.Render("   space pause  ±speed  r restart  c config  q quit") + "\n")

	return b.String()
}

// drawPhaseSpace plots the rx-vs-ry trail accumulated through m.frame.
func (m model) drawPhaseSpace(canvas [][]rune, w, h int) {
	if len(m.traj) == 0 {
		return
	}
	shown := m.traj[:m.frame+1]
	xmin, xmax := shown[0].Rx, shown[0].Rx
	ymin, ymax := shown[0].Ry, shown[0].Ry
	for _, p := range shown {
		xmin, xmax = math.Min(xmin, p.Rx), math.Max(xmax, p.Rx)
		ymin, ymax = math.Min(ymin, p.Ry), math.Max(ymax, p.Ry)
	}
	if xmax == xmin {
		xmax = xmin + 1e-9
	}
	if ymax == ymin {
		ymax = ymin + 1e-9
	}
	for i, p := range shown {
		x := int((p.Rx - xmin) / (xmax - xmin) * float64(w-1))
		y := int((ymax - p.Ry) / (ymax - ymin) * float64(h-1))
		c := '·'
		if i == len(shown)-1 {
			c = '⬤'
		}
		set(canvas, x, y, c, w, h)
	}
}

// drawConvergence plots the Newton residual history on a log-scaled bar
// chart, one column per iteration up to m.frame.
func (m model) drawConvergence(canvas [][]rune, w, h int) {
	if len(m.trace) == 0 {
		return
	}
	shown := m.trace[:m.frame+1]
	maxLog := math.Log10(shown[0] + 1e-300)
	minLog := maxLog
	for _, r := range shown {
		l := math.Log10(r + 1e-300)
		minLog, maxLog = math.Min(minLog, l), math.Max(maxLog, l)
	}
	if maxLog == minLog {
		maxLog = minLog + 1
	}
	bw := (w - 4) / len(shown)
	if bw < 1 {
		bw = 1
	}
	for i, r := range shown {
		l := math.Log10(r + 1e-300)
		norm := (l - minLog) / (maxLog - minLog)
		barH := int(norm * float64(h-2))
		for y := 0; y < barH; y++ {
			set(canvas, 2+i*bw, h-2-y, '█', w, h)
		}
	}
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func RunInteractive() error {
	p := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
