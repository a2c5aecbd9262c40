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

// StocksWidget renders a quote table, one row per symbol, colored by
// the day's direction.
type StocksWidget struct {
	feedStatus
	id     string
	title  string
	quotes []feeds.StockQuote
	now    time.Time
}

func NewStocksWidget(id, title string) *StocksWidget {
	if title == "" {
		title = "Markets"
	}
	return &StocksWidget{id: id, title: title, now: time.Now()}
}

func (w *StocksWidget) ID() string          { return w.id }
func (w *StocksWidget) Title() string       { return w.title }
func (w *StocksWidget) MinSize() (int, int) { return 26, 3 }
func (w *StocksWidget) Capturing() bool     { return false }

func (w *StocksWidget) Update(msg tea.Msg) tea.Cmd {
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
		if quotes, ok := msg.Data.([]feeds.StockQuote); ok {
			w.quotes = quotes
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *StocksWidget) HandleKey(tea.KeyMsg) (tea.Cmd, bool) {
	return nil, false
}

func (w *StocksWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.quotes) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	t := theme.Current
	up := lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusOK))
	down := lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError))
	flat := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))

	var lines []string
	for _, q := range w.quotes {
		row := fmt.Sprintf("%-6s %10.2f %+7.2f %+6.2f%%",
			q.Symbol, q.Price, q.Change, q.ChangePercent)
		row = components.Truncate(row, width)
		switch {
		case q.Change > 0:
			row = up.Render(row)
		case q.Change < 0:
			row = down.Render(row)
		default:
			row = flat.Render(row)
		}
		lines = append(lines, row)
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
