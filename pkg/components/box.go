package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BoxStyle controls RenderBox chrome.
type BoxStyle struct {
	// Title is embedded in the top border, truncated to fit.
	Title string
	// BorderFG is the hex color for the border runes.
	BorderFG string
	// TitleFG is the hex color for the title text. Empty uses BorderFG.
	TitleFG string
}

// Rounded border runes.
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// RenderBox wraps content in a rounded border with an embedded title,
// producing exactly width x height cells. The content is fitted to the
// interior; styled (ANSI) content is handled width-aware.
func RenderBox(content string, width, height int, style BoxStyle) string {
	if width < 2 || height < 2 {
		return FitBlock(content, width, height)
	}

	borderStyle := lipgloss.NewStyle()
	if style.BorderFG != "" {
		borderStyle = borderStyle.Foreground(lipgloss.Color(style.BorderFG))
	}
	titleStyle := borderStyle.Bold(true)
	if style.TitleFG != "" {
		titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(style.TitleFG)).Bold(true)
	}

	innerW := width - 2

	// Top border with embedded title: ╭─ Title ───╮
	var top string
	title := style.Title
	if title != "" && innerW > 4 {
		title = TruncateWithTail(title, innerW-4, "…")
		fill := innerW - VisibleLen(title) - 3
		top = borderStyle.Render(boxTopLeft+boxHorizontal+" ") +
			titleStyle.Render(title) +
			borderStyle.Render(" "+strings.Repeat(boxHorizontal, fill)+boxTopRight)
	} else {
		top = borderStyle.Render(boxTopLeft + strings.Repeat(boxHorizontal, innerW) + boxTopRight)
	}

	bottom := borderStyle.Render(boxBottomLeft + strings.Repeat(boxHorizontal, innerW) + boxBottomRight)
	side := borderStyle.Render(boxVertical)

	body := FitBlock(content, innerW, height-2)
	lines := strings.Split(body, "\n")

	out := make([]string, 0, height)
	out = append(out, top)
	for _, line := range lines {
		out = append(out, side+line+side)
	}
	out = append(out, bottom)
	return strings.Join(out, "\n")
}
