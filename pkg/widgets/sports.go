package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// SportsWidget lists today's games for the configured leagues. Live and
// finished games show the score; upcoming games show the start time.
type SportsWidget struct {
	feedStatus
	id       string
	title    string
	events   []feeds.SportsEvent
	selected int
	now      time.Time
}

func NewSportsWidget(id, title string) *SportsWidget {
	if title == "" {
		title = "Scores"
	}
	return &SportsWidget{id: id, title: title, now: time.Now()}
}

func (w *SportsWidget) ID() string          { return w.id }
func (w *SportsWidget) Title() string       { return w.title }
func (w *SportsWidget) MinSize() (int, int) { return 28, 3 }
func (w *SportsWidget) Capturing() bool     { return false }

func (w *SportsWidget) Update(msg tea.Msg) tea.Cmd {
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
		if events, ok := msg.Data.([]feeds.SportsEvent); ok {
			w.events = events
			w.selected = components.ClampIndex(w.selected, len(w.events))
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *SportsWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, len(w.events))
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, len(w.events))
		return nil, true
	}
	return nil, false
}

func (w *SportsWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.events) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("no games", width, height)
	}

	rows := make([]string, len(w.events))
	for i, e := range w.events {
		var tail string
		if e.Status == "scheduled" && e.StartTime != "" {
			tail = e.StartTime
		} else {
			tail = fmt.Sprintf("%d-%d %s", e.AwayScore, e.HomeScore, e.Status)
		}
		rows[i] = fmt.Sprintf("%-4s %s @ %s  %s", e.League, e.AwayTeam, e.HomeTeam, tail)
	}
	return w.listWithFooter(rows, w.selected, width, height, w.now)
}
