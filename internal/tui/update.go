package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil
	case tickMsg:
		if err := m.engine.Step(); err != nil {
			m.status = "frame error: " + err.Error()
		}
		m.syncList()
		return m, tick()
	case tea.KeyMsg:
		// While filtering, the list owns the keyboard.
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	if m.showSidebar && m.listFocused {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	orbit := m.engine.Orbit()
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "tab":
		m.listFocused = !m.listFocused
		if !m.showSidebar {
			m.listFocused = false
		}
	case "s":
		m.showSidebar = !m.showSidebar
		m.listFocused = m.showSidebar
		m.resizeViewport()
	case "?":
		m.helpVisible = !m.helpVisible
	case "enter":
		if it, ok := m.highlighted(); ok {
			m.engine.Select(it.volume)
			m.status = "selected " + it.volume
		}
	case "esc":
		m.engine.Select("")
		m.status = "selection cleared"
	case " ":
		if it, ok := m.highlighted(); ok {
			m.engine.ToggleHidden(it.volume)
			m.refreshVolumes()
			m.status = fmt.Sprintf("%s hidden: %v", it.volume, m.engine.IsHidden(it.volume))
		}
	case "a":
		m.engine.ShowAll()
		m.refreshVolumes()
		m.status = "all volumes shown"
	case "]":
		m.stepOpacity(opacityStep)
	case "[":
		m.stepOpacity(-opacityStep)
	case "f":
		m.engine.RequestAutoFit()
		m.status = "camera fit"
	case "r":
		if err := m.engine.Reload(); err != nil {
			m.status = "reload: " + err.Error()
		} else {
			m.status = "reloading " + m.engine.DocumentPath()
		}
	case "x":
		m.engine.DismissError()
	case "+", "=":
		orbit.Dolly(1 / dollyStep)
	case "-", "_":
		orbit.Dolly(dollyStep)
	default:
		if m.listFocused {
			return nil, false
		}
		switch msg.String() {
		case "left":
			orbit.OrbitBy(-orbitStep, 0)
		case "right":
			orbit.OrbitBy(orbitStep, 0)
		case "up":
			orbit.OrbitBy(0, orbitStep)
		case "down":
			orbit.OrbitBy(0, -orbitStep)
		default:
			return nil, false
		}
	}
	return nil, true
}

func (m *Model) stepOpacity(delta float32) {
	o := m.engine.Opacity() + delta
	o = min(1, max(0, o))
	if err := m.engine.SetOpacity(o); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("opacity: %.1f", o)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.viewport()
	cx, cy := msg.X-ox, msg.Y-oy
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	orbit := m.engine.Orbit()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		orbit.Dolly(1 / dollyStep)
	case tea.MouseButtonWheelDown:
		orbit.Dolly(dollyStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		x, y := cellToNDC(cx, cy, w, h)
		if volume, ok := m.engine.PickAt(x, y); ok {
			m.status = "picked " + volume
			m.focusVolume(volume)
			return
		}
		m.engine.Select("")
		m.status = "nothing under cursor"
	}
}

// syncList rebuilds the volume list after a new document or a selection
// made outside the list.
func (m *Model) syncList() {
	gen := m.engine.Generation()
	selected := m.engine.Selected()
	if gen == m.listGeneration && selected == m.listSelected {
		return
	}
	newDocument := gen != m.listGeneration
	m.listGeneration, m.listSelected = gen, selected
	m.refreshVolumes()
	if newDocument {
		m.l.Select(0)
		if doc := m.engine.Document(); doc != nil {
			m.status = "loaded " + doc.Name
		}
	}
}
