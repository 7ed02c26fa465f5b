// Package table draws a render.Plan in the terminal with lipgloss.
package table

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mattn/go-runewidth"

	"gridkit/render"
	"gridkit/style"
)

const (
	// CellPixels is the width of one terminal cell in layout pixels.
	CellPixels = 8
	// HeaderHeight is the header row plus its separator.
	HeaderHeight = 2
	// EmptyText is shown in place of cells when there are no rows.
	EmptyText = "No results"
)

// Cells converts a pixel width to terminal cells, at least one.
func Cells(pixels int) int {
	return max(pixels/CellPixels, 1)
}

// Render draws plan, highlighting resizing (a column id) when not empty.
func Render(plan render.Plan, resizing string) string {

	widths := make([]int, len(plan.Columns))
	headers := make([]string, len(plan.Columns))
	selected := -1
	for i, col := range plan.Columns {
		widths[i] = Cells(plan.Sizes[col.SizeVar])
		headers[i] = fit(col.Header, widths[i])
		if col.Id == resizing {
			selected = i
		}
	}

	tbl := table.New()
	style.StyleTable(tbl)
	tbl.StyleFunc(style.ColStyler(selected))
	tbl.Headers(headers...)

	for _, row := range plan.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			if cell.Skeleton {
				cells[i] = bar(cell.Bar, widths[i])
				continue
			}
			cells[i] = fit(cell.Content, widths[i])
		}
		tbl.Row(cells...)
	}

	out := tbl.String()
	if plan.Empty {
		total := 0
		for _, width := range widths {
			total += width
		}
		empty := style.MutedStyle.Render(EmptyText)
		out = lipgloss.JoinVertical(lipgloss.Left, out, lipgloss.PlaceHorizontal(max(total, len(EmptyText)), lipgloss.Center, empty))
	}
	return out
}

// Handle is the trailing edge of a column, in terminal cells from the left.
type Handle struct {
	Id string
	X  int
}

// Handles locates every column's trailing edge.
func Handles(plan render.Plan) []Handle {

	handles := make([]Handle, len(plan.Columns))
	edge := 0
	for i, col := range plan.Columns {
		edge += Cells(plan.Sizes[col.SizeVar])
		handles[i] = Handle{Id: col.Id, X: edge - 1}
	}
	return handles
}

// HandleAt returns the column whose trailing edge is at x, allowing one cell of slop to the left.
func HandleAt(plan render.Plan, x int) (id string, ok bool) {

	for _, handle := range Handles(plan) {
		if x == handle.X || x == handle.X-1 {
			return handle.Id, true
		}
	}
	return
}

// unexported

// fit truncates and pads in to width, keeping the last cell as a gap.
func fit(in string, width int) string {

	if width <= 1 {
		return strings.Repeat(" ", width)
	}

	if runewidth.StringWidth(in) <= width-1 {
		return runewidth.FillRight(in, width)
	}

	truncated := runewidth.FillRight(runewidth.Truncate(in, width-2, ""), width-2)
	ellipsis := style.MutedStyle.Render("…")
	return truncated + ellipsis + " "
}

func bar(percent, width int) string {

	length := max((width-1)*percent/100, 1)
	return style.SkeletonStyle.Render(strings.Repeat("▆", length)) + strings.Repeat(" ", max(width-length, 0))
}
