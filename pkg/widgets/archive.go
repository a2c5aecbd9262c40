package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// ArchiveWidget lists web-archive snapshots for a configured URL
// pattern, newest first.
type ArchiveWidget struct {
	feedStatus
	id       string
	title    string
	items    []feeds.ArchiveItem
	selected int
	now      time.Time
}

func NewArchiveWidget(id, title string) *ArchiveWidget {
	if title == "" {
		title = "Archive"
	}
	return &ArchiveWidget{id: id, title: title, now: time.Now()}
}

func (w *ArchiveWidget) ID() string          { return w.id }
func (w *ArchiveWidget) Title() string       { return w.title }
func (w *ArchiveWidget) MinSize() (int, int) { return 26, 4 }
func (w *ArchiveWidget) Capturing() bool     { return false }

func (w *ArchiveWidget) Update(msg tea.Msg) tea.Cmd {
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
		if items, ok := msg.Data.([]feeds.ArchiveItem); ok {
			w.items = items
			w.selected = components.ClampIndex(w.selected, len(w.items))
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *ArchiveWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
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
		return openURL(w.items[w.selected].ArchiveURL), true
	case "enter":
		if len(w.items) == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *ArchiveWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.items) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("no snapshots", width, height)
	}

	rows := make([]string, len(w.items))
	for i, it := range w.items {
		rows[i] = it.DateDisplay + "  " + it.OriginalURL
	}
	return w.listWithFooter(rows, w.selected, width, height, w.now)
}
