package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// RssWidget shows a merged article list from the configured feeds.
type RssWidget struct {
	feedStatus
	id       string
	title    string
	items    []feeds.RssItem
	selected int
	now      time.Time
}

func NewRssWidget(id, title string) *RssWidget {
	if title == "" {
		title = "Feeds"
	}
	return &RssWidget{id: id, title: title, now: time.Now()}
}

func (w *RssWidget) ID() string          { return w.id }
func (w *RssWidget) Title() string       { return w.title }
func (w *RssWidget) MinSize() (int, int) { return 24, 4 }
func (w *RssWidget) Capturing() bool     { return false }

func (w *RssWidget) Update(msg tea.Msg) tea.Cmd {
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
		if items, ok := msg.Data.([]feeds.RssItem); ok {
			w.items = items
			w.selected = components.ClampIndex(w.selected, len(w.items))
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *RssWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, len(w.items))
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, len(w.items))
		return nil, true
	case "o":
		if len(w.items) == 0 {
			return nil, false
		}
		return openURL(w.items[w.selected].Link), true
	case "enter":
		if len(w.items) == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *RssWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.items) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	rows := make([]string, len(w.items))
	for i, it := range w.items {
		row := it.Title
		if it.Source != "" {
			row = it.Source + ": " + row
		}
		rows[i] = row
	}
	return w.listWithFooter(rows, w.selected, width, height, w.now)
}
