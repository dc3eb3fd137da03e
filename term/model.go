// Package term runs a wishheart scene in a terminal. Each cell stands for a
// CellWidth x CellHeight block of scene pixels; wishes show as their first
// character and the focal text is written out in full.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/phanxgames/wishheart"
)

// Scene pixels per terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	panelWidth   = 34
	historyLen   = 60
	graphHeight  = 6
	minGridWidth = 10
)

var (
	pink    = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	gold    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	panel   = lipgloss.NewStyle().PaddingLeft(2).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("238"))
	plainSt = lipgloss.NewStyle()
)

// cellClass selects the style of a grid cell.
type cellClass uint8

const (
	classEmpty cellClass = iota
	classStar
	classWish
	classFocal
	classDecoration
)

func (c cellClass) style() lipgloss.Style {
	switch c {
	case classStar:
		return dimmer
	case classWish:
		return pink
	case classFocal:
		return red
	case classDecoration:
		return gold
	}
	return plainSt
}

type cell struct {
	r     rune
	class cellClass
}

type tickMsg time.Time

// Model is a bubbletea model driving a Scene.
type Model struct {
	scene   *wishheart.Scene
	width   int
	height  int
	history []float64
	status  string

	// copy writes text to the system clipboard.
	copy func(string) error
}

// New returns a model for scene. The scene is resized on the first
// WindowSizeMsg.
func New(scene *wishheart.Scene) Model {
	return Model{
		scene:   scene,
		width:   80,
		height:  24,
		history: make([]float64, 0, historyLen),
		copy:    clipboard.WriteAll,
	}
}

// Scene returns the driven scene.
func (m Model) Scene() *wishheart.Scene { return m.scene }

func (m Model) tick() tea.Cmd {
	d := time.Second / time.Duration(m.scene.TPS())
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := m.gridSize()
		m.scene.Resize(float64(w*CellWidth), float64(h*CellHeight))
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tickMsg:
		m.scene.Update()
		m.record(m.scene.Orbit().Angles().Yaw)
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.scene.Close()
		return m, tea.Quit
	case " ", "enter":
		if m.scene.Formation().Phase() == wishheart.PhaseIdle {
			m.scene.Start()
		} else {
			m.scene.Toggle()
		}
	case "r":
		m.scene.Start()
		m.history = m.history[:0]
	case "c":
		texts := m.scene.Formation().Texts()
		if len(texts) == 0 {
			m.status = "nothing to copy"
			break
		}
		if err := m.copy(strings.Join(texts, "\n")); err != nil {
			m.status = "copy failed: " + err.Error()
			break
		}
		m.status = fmt.Sprintf("copied %d wishes", len(texts))
	}
	return m, nil
}

// handleMouse converts cell coordinates to scene pixels, aiming at the
// middle of the cell.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	gw, gh := m.gridSize()
	x := (float64(msg.X) + 0.5) * CellWidth
	y := (float64(msg.Y) + 0.5) * CellHeight
	if msg.X >= gw || msg.Y >= gh {
		m.scene.PointerLeave(x, y)
		return
	}
	switch msg.Type {
	case tea.MouseLeft:
		if m.scene.Gate().Active() {
			m.scene.PointerMove(x, y)
		} else {
			m.scene.PointerDown(x, y)
		}
	case tea.MouseMotion:
		m.scene.PointerMove(x, y)
	case tea.MouseRelease:
		m.scene.PointerUp(x, y)
	}
}

func (m *Model) record(yaw float64) {
	if len(m.history) == historyLen {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyLen-1]
	}
	m.history = append(m.history, yaw)
}

// gridSize returns the scene area in cells.
func (m Model) gridSize() (int, int) {
	w := m.width - panelWidth - 3
	if w < minGridWidth {
		w = max(m.width, minGridWidth)
	}
	return w, max(m.height, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	w, h := m.gridSize()
	grid := rasterize(m.scene.Frame(), w, h)
	scene := renderGrid(grid)
	if w == m.width {
		return scene
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, scene, panel.Render(m.panel()))
}

func (m Model) panel() string {
	var b strings.Builder
	f := m.scene.Formation()
	a := m.scene.Orbit().Angles()

	b.WriteString(cyan.Render("w i s h h e a r t") + "\n\n")
	b.WriteString(dim.Render("phase  ") + pink.Render(f.Phase().String()) + "\n")
	if l := f.Layout(); l != nil {
		b.WriteString(dim.Render(fmt.Sprintf("wishes %d  decorations %d", len(l.Wishes), len(l.Decorations))) + "\n")
		b.WriteString(dim.Render(fmt.Sprintf("tier   %s  gen %d", l.Tier, l.Generation)) + "\n")
	}
	b.WriteString(dim.Render(fmt.Sprintf("yaw %7.1f  pitch %6.1f", a.Yaw, a.Pitch)) + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption("yaw"))
		b.WriteString(dim.Render(chart) + "\n\n")
	}

	if m.status != "" {
		b.WriteString(gold.Render(m.status) + "\n\n")
	}
	b.WriteString(dim.Render("space toggle  r restart") + "\n")
	b.WriteString(dim.Render("c copy  q quit  drag rotate") + "\n")
	return b.String()
}

// rasterize places f on a w x h grid of cells. Later sprites overwrite
// earlier ones, so the back-to-front order of f.Sprites is kept.
func rasterize(f wishheart.Frame, w, h int) [][]cell {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
	}
	put := func(px, py float64, r rune, class cellClass) {
		cx, cy := int(px/CellWidth), int(py/CellHeight)
		if px < 0 || py < 0 || cx >= w || cy >= h {
			return
		}
		grid[cy][cx] = cell{r: r, class: class}
	}

	for _, s := range f.Stars {
		put(s.X, s.Y, '.', classStar)
	}
	if f.Phase == wishheart.PhaseIdle {
		writeCentered(grid, wishheart.IntroText, float64(w*CellWidth)/2, float64(h*CellHeight)/2, classFocal)
		return grid
	}
	for _, sp := range f.Sprites {
		switch {
		case sp.Kind == wishheart.SpriteDecoration:
			put(sp.X, sp.Y, decorationRune(sp.Decoration), classDecoration)
		case sp.Focal:
			writeCentered(grid, sp.Text, sp.X, sp.Y, classFocal)
		default:
			r, _ := firstRune(sp.Text)
			put(sp.X, sp.Y, r, classWish)
		}
	}
	return grid
}

func writeCentered(grid [][]cell, text string, px, py float64, class cellClass) {
	if len(grid) == 0 {
		return
	}
	runes := []rune(text)
	cy := int(py / CellHeight)
	cx := int(px/CellWidth) - len(runes)/2
	if py < 0 || cy >= len(grid) {
		return
	}
	row := grid[cy]
	for i, r := range runes {
		x := cx + i
		if x >= 0 && x < len(row) {
			row[x] = cell{r: r, class: class}
		}
	}
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return '?', false
}

func decorationRune(k wishheart.DecorationKind) rune {
	switch k {
	case wishheart.KindStar:
		return '*'
	case wishheart.KindSparkle:
		return '+'
	case wishheart.KindPearl:
		return 'o'
	case wishheart.KindDiamond:
		return '◆'
	}
	return '·'
}

// renderGrid styles each run of same-class cells once.
func renderGrid(grid [][]cell) string {
	var b strings.Builder
	var run strings.Builder
	for y, row := range grid {
		class := classEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if class == classEmpty {
				b.WriteString(run.String())
			} else {
				b.WriteString(class.style().Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.class != class {
				flush()
				class = c.class
			}
			if c.r == 0 {
				run.WriteByte(' ')
			} else {
				run.WriteRune(c.r)
			}
		}
		flush()
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
