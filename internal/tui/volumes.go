package tui

import (
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// One placement in the volume tree. Several placements may share a volume.
type volumeItem struct {
	name     string
	volume   string
	material string
	depth    int
	hidden   bool
	selected bool
}

func (v volumeItem) Title() string {
	mark := "● "
	if v.hidden {
		mark = "○ "
	}
	if v.selected {
		mark = "▸ "
	}
	title := strings.Repeat("  ", v.depth) + mark + v.name
	if v.hidden {
		return hiddenStyle.Render(title)
	}
	return title
}
func (v volumeItem) Description() string { return v.material }
func (v volumeItem) FilterValue() string { return v.name + " " + v.volume }

// volumeItems flattens the scene graph in document order.
func volumeItems(doc *metadata.Document, vs *metadata.VisibilityState) []list.Item {
	if doc == nil || doc.SceneGraph == nil {
		return nil
	}
	var items []list.Item
	doc.SceneGraph.Walk(func(n *metadata.SceneNode, depth int) bool {
		name := n.Name
		if name == "" {
			name = n.VolumeName
		}
		items = append(items, volumeItem{
			name:     name,
			volume:   n.VolumeName,
			material: n.MaterialName,
			depth:    depth,
			hidden:   vs.IsHidden(n.VolumeName),
			selected: vs.Selected != "" && vs.Selected == n.VolumeName,
		})
		return true
	})
	return items
}

// refreshVolumes rebuilds the list so hidden and selected marks follow the
// engine state. The cursor stays where it was.
func (m *Model) refreshVolumes() {
	idx := m.l.Index()
	m.l.SetItems(volumeItems(m.engine.Document(), m.engine.Visibility()))
	if idx < len(m.l.Items()) {
		m.l.Select(idx)
	}
}

// focusVolume moves the cursor to the first placement of volume.
func (m *Model) focusVolume(volume string) {
	for i, it := range m.l.Items() {
		if vi, ok := it.(volumeItem); ok && vi.volume == volume {
			m.l.Select(i)
			return
		}
	}
}

func (m *Model) highlighted() (volumeItem, bool) {
	vi, ok := m.l.SelectedItem().(volumeItem)
	return vi, ok
}
