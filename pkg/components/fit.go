package components

import "strings"

// FitBlock normalizes content to exactly width x height cells: each line
// is truncated or right-padded to width, and lines are added or dropped
// so the block is exactly height lines tall. Widgets use this so the grid
// compositor can rely on uniform cell dimensions.
func FitBlock(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	fitted := make([]string, height)
	for i := 0; i < height; i++ {
		if i < len(lines) {
			fitted[i] = PadRight(Truncate(lines[i], width), width)
		} else {
			fitted[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(fitted, "\n")
}

// CenterBlock vertically centers up to height lines of content, padding
// the remainder with blank lines. Used for "No data" style placeholders.
func CenterBlock(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) >= height {
		return FitBlock(content, width, height)
	}

	topPad := (height - len(lines)) / 2
	padded := make([]string, 0, height)
	for i := 0; i < topPad; i++ {
		padded = append(padded, "")
	}
	for _, l := range lines {
		padded = append(padded, PadCenter(Truncate(l, width), width))
	}
	return FitBlock(strings.Join(padded, "\n"), width, height)
}
