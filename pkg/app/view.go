package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/layout"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// View renders the full frame: the widget grid plus a one-line status
// bar. The frame is scanned by bubblezone so clicks can be mapped back
// to widgets.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "starting…"
	}
	if m.showHelp {
		return m.viewHelp()
	}

	gridH := m.height - 1
	var body string
	if len(m.grid.Cells) == 0 {
		body = components.CenterBlock("no widgets configured", m.width, gridH)
	} else {
		body = m.renderGrid(gridH)
	}

	return zone.Scan(body + "\n" + m.statusBar())
}

// renderGrid composes the widget boxes row by row. Grid positions with
// no widget render as blanks so columns stay aligned.
func (m *Model) renderGrid(gridH int) string {
	cells := map[[2]int]layout.Cell{}
	for _, c := range m.grid.Cells {
		cells[[2]int{c.Row, c.Col}] = c
	}

	colW := axisSizes(m.width, m.grid.Cols)
	rowH := axisSizes(gridH, m.grid.Rows)

	var rows []string
	for r := 0; r < m.grid.Rows; r++ {
		var boxes []string
		for c := 0; c < m.grid.Cols; c++ {
			cell, ok := cells[[2]int{r, c}]
			if !ok {
				boxes = append(boxes, components.FitBlock("", colW[c], rowH[r]))
				continue
			}
			boxes = append(boxes, m.renderCell(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell renders one widget in its bordered box, marked for mouse
// hit-testing.
func (m *Model) renderCell(cell layout.Cell) string {
	t := theme.Current
	w := m.widgets[cell.ID]
	if w == nil {
		return components.FitBlock("", cell.Rect.Width, cell.Rect.Height)
	}

	borderFG := t.Border
	if cell.ID == m.focused {
		borderFG = t.BorderFocus
	}

	innerW := cell.Rect.Width - 2
	innerH := cell.Rect.Height - 2
	var content string
	if minW, minH := w.MinSize(); innerW < minW || innerH < minH {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
		content = components.CenterBlock(dim.Render("too small"), innerW, innerH)
	} else {
		content = w.View(innerW, innerH)
	}

	box := components.RenderBox(content, cell.Rect.Width, cell.Rect.Height, components.BoxStyle{
		Title:    w.Title(),
		BorderFG: borderFG,
		TitleFG:  t.Title,
	})
	return zone.Mark(cell.ID, box)
}

// statusBar is the single bottom line: config warnings if any, then key
// hints, padded to the full width.
func (m *Model) statusBar() string {
	t := theme.Current
	hints := "tab:focus  r:refresh  ?:help  q:quit"
	if n := len(m.warnings); n > 0 {
		hints = fmt.Sprintf("%d config warning(s) (see log)  |  %s", n, hints)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
	return style.Render(components.PadRight(components.Truncate(hints, m.width), m.width))
}

// viewHelp renders the full-screen help overlay.
func (m *Model) viewHelp() string {
	t := theme.Current
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))

	lines := []string{
		title.Render("feedtui keys"),
		"",
		"  q, ctrl-c     quit",
		"  tab / S-tab   cycle focus",
		"  r             refresh focused widget",
		"  j / k         move selection in lists",
		"  enter         interact with selected item",
		"  o             open selected item in browser",
		"  ?             toggle this help",
		"",
		title.Render("pet"),
		"  s             skill menu    o  outfit menu    p  pat",
		"",
		title.Render("social"),
		"  c             compose       a  reply          /  search",
		"",
		title.Render("clock"),
		"  s             start/pause stopwatch           r  reset",
	}
	if len(m.warnings) > 0 {
		lines = append(lines, "", title.Render("config warnings"))
		for _, warn := range m.warnings {
			lines = append(lines, "  "+warn)
		}
	}

	box := components.RenderBox(strings.Join(lines, "\n"), minInt(m.width, 60), minInt(m.height, len(lines)+4),
		components.BoxStyle{Title: "Help", BorderFG: t.BorderFocus, TitleFG: t.Title})
	return components.CenterBlock(box, m.width, m.height)
}

// axisSizes partitions total cells evenly into n parts, remainder to
// the last, mirroring the layout computation.
func axisSizes(total, n int) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	base := total / n
	for i := range sizes {
		sizes[i] = base
	}
	sizes[n-1] += total - base*n
	return sizes
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
