package gridkit

import (
	"strings"

	"charm.land/lipgloss/v2"

	"gridkit/reorder"
	"gridkit/settings"
	"gridkit/style"
)

const (
	panelWidth = 36
	// the modal border and padding offset its content
	panelLeft = 2
	panelTop  = 1
	panelHelp = "enter save · esc cancel · h hide · v show · J/K move"
)

// panelItem is one line of the settings panel that names a column.
type panelItem struct {
	id     string
	label  string
	part   reorder.Partition
	pinned bool
	line   int
}

// settingsPanel lays out the modal's lists so pointer positions map back onto them.
type settingsPanel struct {
	lines   []string
	items   []panelItem
	hidden  [2]int // first and last line of the hidden drop zone
	visible [2]int
}

func newSettingsPanel(mdl *settings.Modal) settingsPanel {

	pnl := settingsPanel{}
	add := func(text string) int {
		pnl.lines = append(pnl.lines, text)
		return len(pnl.lines) - 1
	}

	add("Column settings")
	add("")

	pnl.hidden[0] = add("Hidden fields")
	hidden := mdl.Hidden()
	for _, col := range hidden {
		line := add("  ○ " + col.Label())
		pnl.items = append(pnl.items, panelItem{id: col.Id, label: col.Label(), part: reorder.Hidden, line: line})
	}
	if len(hidden) == 0 {
		add(style.MutedStyle.Render("  (none)"))
	}
	pnl.hidden[1] = len(pnl.lines) - 1
	add("")

	pnl.visible[0] = add("Visible fields")
	for _, col := range mdl.Pinned() {
		line := add(style.MutedStyle.Render("  ▪ " + col.Label()))
		pnl.items = append(pnl.items, panelItem{id: col.Id, label: col.Label(), part: reorder.Visible, pinned: true, line: line})
	}
	for _, col := range mdl.Visible() {
		line := add("  ≡ " + col.Label())
		pnl.items = append(pnl.items, panelItem{id: col.Id, label: col.Label(), part: reorder.Visible, line: line})
	}
	pnl.visible[1] = len(pnl.lines) - 1

	add("")
	add(style.MutedStyle.Render(panelHelp))
	return pnl
}

// selectable returns the items a cursor may rest on; pinned columns are inert.
func (pnl settingsPanel) selectable() []panelItem {

	items := []panelItem{}
	for _, item := range pnl.items {
		if !item.pinned {
			items = append(items, item)
		}
	}
	return items
}

// siblings returns the draggable visible columns as laid out.
func (pnl settingsPanel) siblings() []reorder.Sibling {

	sibs := []reorder.Sibling{}
	for _, item := range pnl.items {
		if item.part == reorder.Visible && !item.pinned {
			sibs = append(sibs, reorder.Sibling{
				Id:   item.id,
				Rect: reorder.Rect{X: 0, Y: item.line, W: panelWidth, H: 1},
			})
		}
	}
	return sibs
}

// partition maps a screen position to a drop zone and a point in panel coordinates.
func (pnl settingsPanel) partition(x, y int) (part reorder.Partition, pt reorder.Point) {

	pt = reorder.Point{X: x - panelLeft, Y: y - panelTop}
	if pt.X < 0 || pt.X >= panelWidth {
		return reorder.Outside, pt
	}

	switch {
	case pt.Y >= pnl.hidden[0] && pt.Y <= pnl.hidden[1]:
		part = reorder.Hidden
	case pt.Y >= pnl.visible[0] && pt.Y <= pnl.visible[1]:
		part = reorder.Visible
	}
	return
}

// itemAt returns the selectable item on screen line y.
func (pnl settingsPanel) itemAt(y int) (item panelItem, ok bool) {

	for _, item := range pnl.selectable() {
		if item.line == y-panelTop {
			return item, true
		}
	}
	return
}

func (pnl settingsPanel) render(cursor string, dragging string) string {

	lines := append([]string{}, pnl.lines...)
	for _, item := range pnl.items {
		switch item.id {
		case dragging:
			lines[item.line] = style.DragStyle.Render(lines[item.line])
		case cursor:
			lines[item.line] = style.CursorStyle.Render(lines[item.line])
		}
	}

	content := lipgloss.NewStyle().Width(panelWidth).Render(strings.Join(lines, "\n"))
	return style.ModalStyle.Render(content)
}
