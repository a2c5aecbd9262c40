package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// HackerNewsWidget shows the front-page story list with score and
// comment counts. j/k move the selection, enter marks the story read.
type HackerNewsWidget struct {
	feedStatus
	id       string
	title    string
	stories  []feeds.HnStory
	selected int
	now      time.Time
}

func NewHackerNewsWidget(id, title string) *HackerNewsWidget {
	if title == "" {
		title = "Hacker News"
	}
	return &HackerNewsWidget{id: id, title: title, now: time.Now()}
}

func (w *HackerNewsWidget) ID() string    { return w.id }
func (w *HackerNewsWidget) Title() string { return w.title }

func (w *HackerNewsWidget) MinSize() (int, int) { return 24, 4 }

func (w *HackerNewsWidget) Capturing() bool { return false }

func (w *HackerNewsWidget) Update(msg tea.Msg) tea.Cmd {
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
		if stories, ok := msg.Data.([]feeds.HnStory); ok {
			w.stories = stories
			w.selected = components.ClampIndex(w.selected, len(w.stories))
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *HackerNewsWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, len(w.stories))
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, len(w.stories))
		return nil, true
	case "o":
		if len(w.stories) == 0 {
			return nil, false
		}
		return openURL(w.stories[w.selected].URL), true
	case "enter":
		if len(w.stories) == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *HackerNewsWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.stories) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	rows := make([]string, len(w.stories))
	for i, s := range w.stories {
		rows[i] = fmt.Sprintf("%3d▲ %s (%d)", s.Score, s.Title, s.Comments)
	}
	return w.listWithFooter(rows, w.selected, width, height, w.now)
}
