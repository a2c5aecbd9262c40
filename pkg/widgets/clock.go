package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// stopwatchState is the stopwatch's phase.
type stopwatchState int

const (
	swStopped stopwatchState = iota
	swRunning
	swPaused
)

// Stopwatch is a start/pause/reset timer driven by tick events. Elapsed
// time is derived from wall-clock timestamps, not tick counting, so a
// slow tick cadence cannot drift it.
type Stopwatch struct {
	state   stopwatchState
	start   time.Time     // valid while running
	elapsed time.Duration // accumulated before the current run
}

// Toggle starts a stopped or paused stopwatch and pauses a running one.
func (s *Stopwatch) Toggle(now time.Time) {
	switch s.state {
	case swRunning:
		s.elapsed += now.Sub(s.start)
		s.state = swPaused
	default:
		s.start = now
		s.state = swRunning
	}
}

// Reset returns the stopwatch to zero, stopped.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// Elapsed returns total accumulated time as of now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.state == swRunning {
		return s.elapsed + now.Sub(s.start)
	}
	return s.elapsed
}

// Running reports whether the stopwatch is currently counting.
func (s *Stopwatch) Running() bool { return s.state == swRunning }

// ClockWidget shows the current time in several zones with the local
// zone highlighted, plus a stopwatch. It has no refresh unit; ticks
// drive it entirely.
type ClockWidget struct {
	id        string
	title     string
	zones     []*time.Location
	zoneNames []string
	stopwatch Stopwatch
	now       time.Time
}

// NewClockWidget resolves the configured zone names. Unresolvable zones
// are skipped; the local zone is always present and listed first.
func NewClockWidget(id, title string, timezones []string) *ClockWidget {
	if title == "" {
		title = "Clock"
	}
	w := &ClockWidget{id: id, title: title, now: time.Now()}
	w.zones = append(w.zones, time.Local)
	w.zoneNames = append(w.zoneNames, "Local")
	for _, name := range timezones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		w.zones = append(w.zones, loc)
		w.zoneNames = append(w.zoneNames, name)
	}
	return w
}

func (w *ClockWidget) ID() string          { return w.id }
func (w *ClockWidget) Title() string       { return w.title }
func (w *ClockWidget) MinSize() (int, int) { return 20, 3 }
func (w *ClockWidget) Capturing() bool     { return false }

func (w *ClockWidget) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(app.TickEvent); ok {
		w.now = tick.Time
	}
	return nil
}

func (w *ClockWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "s":
		w.stopwatch.Toggle(w.now)
		return nil, true
	case "r":
		w.stopwatch.Reset()
		return nil, true
	}
	return nil, false
}

func (w *ClockWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	t := theme.Current
	local := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))

	var lines []string
	for i, loc := range w.zones {
		line := fmt.Sprintf("%-12s %s", w.zoneNames[i], w.now.In(loc).Format("15:04:05"))
		line = components.Truncate(line, width)
		if i == 0 {
			line = local.Render(line)
		}
		lines = append(lines, line)
	}

	e := w.stopwatch.Elapsed(w.now)
	sw := fmt.Sprintf("⏱ %02d:%02d:%02d", int(e.Hours()), int(e.Minutes())%60, int(e.Seconds())%60)
	if w.stopwatch.Running() {
		sw += " ●"
	} else if e > 0 {
		sw += " ‖"
	}
	lines = append(lines, dim.Render(components.Truncate(sw, width)))

	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return components.FitBlock(out, width, height)
}
