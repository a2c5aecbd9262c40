package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// SysMetricsWidget shows a CPU/memory/load snapshot with gauges.
type SysMetricsWidget struct {
	feedStatus
	id    string
	title string
	snap  *feeds.SysSnapshot
	now   time.Time
}

func NewSysMetricsWidget(id, title string) *SysMetricsWidget {
	if title == "" {
		title = "System"
	}
	return &SysMetricsWidget{id: id, title: title, now: time.Now()}
}

func (w *SysMetricsWidget) ID() string          { return w.id }
func (w *SysMetricsWidget) Title() string       { return w.title }
func (w *SysMetricsWidget) MinSize() (int, int) { return 24, 4 }
func (w *SysMetricsWidget) Capturing() bool     { return false }

func (w *SysMetricsWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.TickEvent:
		w.now = msg.Time
	case app.DataUpdateEvent:
		if msg.WidgetID != w.id {
			return nil
		}
		if msg.Err != nil {
			w.markErr(msg.Err)
			return nil
		}
		if snap, ok := msg.Data.(*feeds.SysSnapshot); ok && snap != nil {
			w.snap = snap
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *SysMetricsWidget) HandleKey(tea.KeyMsg) (tea.Cmd, bool) {
	return nil, false
}

func (w *SysMetricsWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.snap == nil {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	s := w.snap
	t := theme.Current
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))

	gauge := func(label string, pct float64) string {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusOK))
		if pct >= 80 {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError))
		} else if pct >= 50 {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusWarn))
		}
		barW := width - 12
		if barW < 4 {
			barW = 4
		}
		return style.Render(components.Truncate(
			fmt.Sprintf("%-4s %s %3.0f%%", label, components.Bar(pct/100, barW), pct), width))
	}

	lines := []string{
		gauge("CPU", s.CPUPercent),
		gauge("RAM", s.MemPercent),
		dim.Render(components.Truncate(
			fmt.Sprintf("load %.2f %.2f %.2f", s.Load1, s.Load5, s.Load15), width)),
	}
	if s.Uptime > 0 {
		lines = append(lines, dim.Render(components.Truncate(
			fmt.Sprintf("up %s", formatUptime(s.Uptime)), width)))
	}
	if foot := w.footer(width, w.now); foot != "" && height > len(lines) {
		lines = append(lines, foot)
	}

	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return components.FitBlock(out, width, height)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh %dm", hours, int(d.Minutes())%60)
}
