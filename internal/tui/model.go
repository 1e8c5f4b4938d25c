// Package tui is the terminal front end of the viewer: a volume tree on the
// left and the braille viewport on the right.
package tui

import (
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davsar89/GDML-Studio/engine"
	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer/terminal"
)

const (
	frameInterval = time.Second / 30
	sidebarWidth  = 34
	headerHeight  = 1
	footerHeight  = 2
	orbitStep     = 0.15
	dollyStep     = 1.15
	opacityStep   = 0.1
)

type tickMsg time.Time

type Model struct {
	engine  *engine.Engine
	backend *terminal.Backend

	width  int
	height int

	showSidebar bool
	helpVisible bool
	listFocused bool

	status string

	l list.Model

	// last viewport size handed to the engine, in cells
	viewW int
	viewH int

	// generation and selection the list was last built for
	listGeneration core.Generation
	listSelected   string
}

func New(e *engine.Engine, backend *terminal.Backend) Model {
	m := Model{
		engine:         e,
		backend:        backend,
		showSidebar:    true,
		helpVisible:    true,
		listFocused:    true,
		status:         "ready",
		listGeneration: core.InvalidGeneration,
	}
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Volumes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// viewport returns the origin and size in cells of the 3D view.
func (m Model) viewport() (x, y, w, h int) {
	x = 0
	if m.showSidebar {
		x = sidebarWidth + 1
	}
	y = headerHeight
	w = max(10, m.width-x)
	h = max(4, m.height-headerHeight-footerHeight)
	return x, y, w, h
}

// resizeViewport tells the engine about a new viewport size. The terminal
// raster is measured in dots, 2x4 per cell.
func (m *Model) resizeViewport() {
	_, _, w, h := m.viewport()
	if w == m.viewW && h == m.viewH {
		return
	}
	m.viewW, m.viewH = w, h
	if err := m.engine.OnResize(uint32(w*2), uint32(h*4)); err != nil {
		m.status = "resize error: " + err.Error()
	}
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, h-2)
	}
}

// cellToNDC maps a viewport cell to normalized device coordinates, sampling
// the cell center.
func cellToNDC(cx, cy, w, h int) (float32, float32) {
	x := (float32(cx)+0.5)/float32(w)*2 - 1
	y := 1 - (float32(cy)+0.5)/float32(h)*2
	return x, y
}
