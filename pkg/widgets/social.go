package widgets

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/components"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// socialMode is the social widget's input mode. Any mode other than
// normal captures every key.
type socialMode int

const (
	socialNormal socialMode = iota
	socialCompose
	socialReply
	socialSearch
)

// bridgeActionTimeout bounds one bridge invocation made from a key
// handler (post, reply, search).
const bridgeActionTimeout = 15 * time.Second

// bridgeDoneMsg reports a completed bridge action back to the widget.
type bridgeDoneMsg struct {
	widgetID string
	action   string
	posts    []feeds.Post
	err      error
}

// SocialWidget shows a short-form post timeline with compose, reply,
// and search overlays. All posting goes through the external bridge
// command; without one the widget is read-only and explains why.
type SocialWidget struct {
	feedStatus
	id       string
	title    string
	bridge   *feeds.Bridge
	posts    []feeds.Post
	selected int
	mode     socialMode
	input    textinput.Model
	replyTo  string
	notice   string
	now      time.Time
}

func NewSocialWidget(id, title string, bridge *feeds.Bridge) *SocialWidget {
	if title == "" {
		title = "Social"
	}
	ti := textinput.New()
	ti.CharLimit = 280
	return &SocialWidget{id: id, title: title, bridge: bridge, input: ti, now: time.Now()}
}

func (w *SocialWidget) ID() string          { return w.id }
func (w *SocialWidget) Title() string       { return w.title }
func (w *SocialWidget) MinSize() (int, int) { return 28, 5 }

func (w *SocialWidget) Capturing() bool { return w.mode != socialNormal }

func (w *SocialWidget) Update(msg tea.Msg) tea.Cmd {
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
		if posts, ok := msg.Data.([]feeds.Post); ok {
			w.posts = posts
			w.selected = components.ClampIndex(w.selected, len(w.posts))
			w.markOK(msg.Timestamp)
		}
	case bridgeDoneMsg:
		if msg.widgetID != w.id {
			return nil
		}
		if msg.err != nil {
			w.notice = msg.err.Error()
			return nil
		}
		switch msg.action {
		case "search":
			w.posts = msg.posts
			w.selected = 0
			w.notice = ""
		case "post", "reply":
			w.notice = "sent"
		}
	}
	return nil
}

func (w *SocialWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	if w.mode != socialNormal {
		return w.handleModalKey(key), true
	}

	switch key.String() {
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, len(w.posts))
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, len(w.posts))
		return nil, true
	case "c":
		if w.bridge == nil {
			w.notice = "no bridge command configured"
			return nil, true
		}
		w.openInput(socialCompose, "compose…")
		return nil, true
	case "a":
		if w.bridge == nil || len(w.posts) == 0 {
			return nil, true
		}
		w.replyTo = w.posts[w.selected].ID
		w.openInput(socialReply, "reply…")
		return nil, true
	case "/":
		if w.bridge == nil {
			w.notice = "no bridge command configured"
			return nil, true
		}
		w.openInput(socialSearch, "search…")
		return nil, true
	case "o":
		if len(w.posts) == 0 {
			return nil, false
		}
		return openURL(w.posts[w.selected].URL), true
	case "enter":
		if len(w.posts) == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *SocialWidget) openInput(mode socialMode, placeholder string) {
	w.mode = mode
	w.notice = ""
	w.input.Placeholder = placeholder
	w.input.SetValue("")
	w.input.Focus()
}

func (w *SocialWidget) handleModalKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		w.mode = socialNormal
		w.input.Blur()
		return nil
	case "enter":
		text := w.input.Value()
		mode := w.mode
		w.mode = socialNormal
		w.input.Blur()
		if text == "" {
			return nil
		}
		return w.bridgeCmd(mode, text)
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(key)
	return cmd
}

// bridgeCmd runs the submitted modal action off the UI goroutine.
func (w *SocialWidget) bridgeCmd(mode socialMode, text string) tea.Cmd {
	id, bridge, replyTo := w.id, w.bridge, w.replyTo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bridgeActionTimeout)
		defer cancel()
		switch mode {
		case socialCompose:
			return bridgeDoneMsg{widgetID: id, action: "post", err: bridge.Post(ctx, text)}
		case socialReply:
			return bridgeDoneMsg{widgetID: id, action: "reply", err: bridge.Reply(ctx, replyTo, text)}
		case socialSearch:
			posts, err := bridge.Search(ctx, text)
			return bridgeDoneMsg{widgetID: id, action: "search", posts: posts, err: err}
		}
		return nil
	}
}

func (w *SocialWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	t := theme.Current

	if w.mode != socialNormal {
		label := map[socialMode]string{
			socialCompose: "Compose",
			socialReply:   "Reply",
			socialSearch:  "Search",
		}[w.mode]
		head := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(t.Accent)).
			Render(label + " (enter to send, esc to cancel)")
		w.input.Width = width - 2
		return components.FitBlock(head+"\n"+w.input.View(), width, height)
	}

	if len(w.posts) == 0 {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		if w.bridge == nil {
			return centerMessage("no bridge command configured", width, height)
		}
		return centerMessage("loading…", width, height)
	}

	rows := make([]string, len(w.posts))
	for i, p := range w.posts {
		rows[i] = "@" + p.Author + " " + p.Text
	}

	body := height
	var trailer string
	if w.notice != "" && height > 2 {
		body = height - 1
		trailer = lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusWarn)).
			Render(components.Truncate(w.notice, width))
	}
	out := w.listWithFooter(rows, w.selected, width, body, w.now)
	if trailer != "" {
		out += "\n" + trailer
	}
	return components.FitBlock(out, width, height)
}
