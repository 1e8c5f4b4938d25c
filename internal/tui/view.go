package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, viewW, viewH := m.viewport()

	// Header, replaced by the error banner while an error is pending.
	var header string
	if err := m.engine.CurrentError(); err != nil {
		header = errorStyle.Render(" ✖ " + err.Error() + "  (x to dismiss) ")
	} else {
		header = titleStyle.Render(" GDML Studio ") + dimStyle.Render(m.documentTitle())
	}
	header = lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(header)

	scene := lipgloss.NewStyle().Width(viewW).Height(viewH).MaxHeight(viewH).Render(m.backend.Frame())
	body := scene
	if m.showSidebar {
		border := borderCol
		if m.listFocused {
			border = accentFg
		}
		sidebar := boxStyle.BorderForeground(border).Width(sidebarWidth - 2).Height(viewH - 2).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", scene)
	}

	status := dimStyle.Render(" " + m.status + " ")
	stats := dimStyle.Render(m.stats())
	spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(status)-lipgloss.Width(stats)))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, status, spacer, stats),
		m.renderHelp(),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).MaxHeight(m.height).Render(ui)
}

func (m Model) documentTitle() string {
	if m.engine.Loading() {
		return " loading…"
	}
	doc := m.engine.Document()
	if doc == nil {
		return " no document"
	}
	s := doc.Summary()
	return fmt.Sprintf(" %s  volumes=%d solids=%d meshes=%d triangles=%d depth=%d",
		s.Name, s.VolumeCount, s.SolidCount, s.MeshCount, s.TriangleSize, s.MaxDepth)
}

func (m Model) stats() string {
	return fmt.Sprintf(" drawn=%d opacity=%.1f %.0f fps ",
		len(m.engine.Nodes()), m.engine.Opacity(), m.engine.Metrics().FPS())
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"Tab focus",
		"Enter select",
		"Space hide",
		"a show all",
		"[/] opacity",
		"←→↑↓ orbit",
		"+/- zoom",
		"f fit",
		"r reload",
		"s sidebar",
		"? help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
