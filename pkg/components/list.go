package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListStyle controls selection rendering in RenderList.
type ListStyle struct {
	// SelectedFG is the foreground hex color for the selected row.
	SelectedFG string
	// Marker prefixes the selected row (e.g. "> "). Unselected rows get
	// equivalent blank padding so columns stay aligned.
	Marker string
}

// RenderList renders items as a scrolling selection list fitted to
// width x height. The window scrolls so the selected index stays
// visible. Rows are truncated to width; the selected row is styled.
func RenderList(items []string, selected int, width, height int, style ListStyle) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(items) == 0 {
		return FitBlock("", width, height)
	}

	if selected < 0 {
		selected = 0
	}
	if selected >= len(items) {
		selected = len(items) - 1
	}

	// Scroll window keeping the selection visible.
	offset := 0
	if selected >= height {
		offset = selected - height + 1
	}
	end := offset + height
	if end > len(items) {
		end = len(items)
	}

	marker := style.Marker
	if marker == "" {
		marker = "> "
	}
	blank := strings.Repeat(" ", VisibleLen(marker))

	selStyle := lipgloss.NewStyle().Bold(true)
	if style.SelectedFG != "" {
		selStyle = selStyle.Foreground(lipgloss.Color(style.SelectedFG))
	}

	rows := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		row := TruncateWithTail(items[i], width-VisibleLen(marker), "…")
		if i == selected {
			rows = append(rows, selStyle.Render(marker+row))
		} else {
			rows = append(rows, blank+row)
		}
	}
	return FitBlock(strings.Join(rows, "\n"), width, height)
}

// ClampIndex bounds idx to the valid index range of a list of length n.
// Returns 0 for an empty list.
func ClampIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
