// Package widgets provides the concrete pane implementations for the
// feedtui dashboard. Each widget implements app.Widget and receives its
// data through the Elm-architecture Update loop; none of them perform
// I/O on the UI goroutine.
package widgets

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// staleAfter is how old the last successful refresh may be before a
// widget footer flags the data as stale.
const staleAfter = 3 * time.Minute

// openURL launches the platform opener for a feed link, detached from
// the UI. A failed launch has nowhere useful to surface, so it is
// dropped.
func openURL(url string) tea.Cmd {
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		opener := "xdg-open"
		if runtime.GOOS == "darwin" {
			opener = "open"
		}
		_ = exec.Command(opener, url).Start()
		return nil
	}
}

// centerMessage renders msg centered in a width x height block, dimmed.
func centerMessage(msg string, width, height int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current.Dim))
	return components.CenterBlock(style.Render(msg), width, height)
}

// feedStatus is the refresh bookkeeping shared by every data-backed
// widget: when the last good payload arrived and what the last failure
// was. Embedders call markOK/markErr from their Update.
type feedStatus struct {
	lastOK  time.Time
	lastErr error
}

func (s *feedStatus) markOK(ts time.Time) {
	s.lastOK = ts
	s.lastErr = nil
}

func (s *feedStatus) markErr(err error) {
	s.lastErr = err
}

// footer renders a one-line status trailer: an error note when the last
// refresh failed, a stale marker when data is old, otherwise the age of
// the data. Returns "" when there is nothing worth a line.
func (s *feedStatus) footer(width int, now time.Time) string {
	t := theme.Current
	switch {
	case s.lastErr != nil:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError))
		return style.Render(components.TruncateWithTail("! "+s.lastErr.Error(), width, "…"))
	case s.lastOK.IsZero():
		return ""
	case now.Sub(s.lastOK) > staleAfter:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusStale))
		return style.Render(components.Truncate("stale "+ageString(now.Sub(s.lastOK)), width))
	default:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
		return style.Render(components.Truncate(ageString(now.Sub(s.lastOK)), width))
	}
}

// ageString formats a duration as a compact "2m ago" style string.
func ageString(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// listStyle is the shared selection style for scrolling feed lists.
func listStyle() components.ListStyle {
	return components.ListStyle{SelectedFG: theme.Current.Accent, Marker: "> "}
}

// listWithFooter renders a scrolling list with the status footer on the
// last line when there is room and something to say.
func (s *feedStatus) listWithFooter(rows []string, selected, width, height int, now time.Time) string {
	listH := height
	foot := s.footer(width, now)
	if foot != "" && height > 2 {
		listH = height - 1
	}
	out := components.RenderList(rows, selected, width, listH, listStyle())
	if listH < height {
		out += "\n" + foot
	}
	return components.FitBlock(out, width, height)
}
