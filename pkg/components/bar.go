package components

import "strings"

// Bar renders a horizontal progress bar of the given width. ratio is
// clamped to [0, 1]. The filled portion uses '█', the rest '░'.
func Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// LabeledBar renders "label [█████░░░] " fitted to width, with the bar
// consuming whatever space the label leaves. If width is too small for
// both, only the truncated label is returned.
func LabeledBar(label string, ratio float64, width int) string {
	lw := VisibleLen(label)
	barW := width - lw - 3 // space + brackets
	if barW < 4 {
		return Truncate(label, width)
	}
	return label + " [" + Bar(ratio, barW) + "]"
}
