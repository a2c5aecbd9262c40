package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// YoutubeWidget lists recent uploads from the configured channels.
type YoutubeWidget struct {
	feedStatus
	id       string
	title    string
	videos   []feeds.YoutubeVideo
	selected int
	now      time.Time
}

func NewYoutubeWidget(id, title string) *YoutubeWidget {
	if title == "" {
		title = "YouTube"
	}
	return &YoutubeWidget{id: id, title: title, now: time.Now()}
}

func (w *YoutubeWidget) ID() string          { return w.id }
func (w *YoutubeWidget) Title() string       { return w.title }
func (w *YoutubeWidget) MinSize() (int, int) { return 24, 4 }
func (w *YoutubeWidget) Capturing() bool     { return false }

func (w *YoutubeWidget) Update(msg tea.Msg) tea.Cmd {
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
		if videos, ok := msg.Data.([]feeds.YoutubeVideo); ok {
			w.videos = videos
			w.selected = components.ClampIndex(w.selected, len(w.videos))
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *YoutubeWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, len(w.videos))
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, len(w.videos))
		return nil, true
	case "o":
		if len(w.videos) == 0 {
			return nil, false
		}
		return openURL(w.videos[w.selected].URL), true
	case "enter":
		if len(w.videos) == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *YoutubeWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.videos) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	rows := make([]string, len(w.videos))
	for i, v := range w.videos {
		rows[i] = v.Channel + " · " + v.Title
	}
	return w.listWithFooter(rows, w.selected, width, height, w.now)
}
