package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HlColStyle       = lipgloss.NewStyle().Background(lipgloss.Color("236")) // Column under resize
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	SkeletonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238")) // Placeholder bars
	DragStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	CursorStyle      = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	ModalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	UnStyle = lipgloss.NewStyle()
)

// ColStyler returns a StyleFunc that highlights the column being resized, -1 for none.
func ColStyler(selectedCol int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if col == selectedCol {
			return HlColStyle
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
