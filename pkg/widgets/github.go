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

// githubSection identifies one of the three dashboard sections.
type githubSection int

const (
	sectionNotifications githubSection = iota
	sectionPullRequests
	sectionCommits
)

// GithubWidget shows notifications, pull requests, and recent commits.
// 's' cycles the visible section, j/k move within it.
type GithubWidget struct {
	feedStatus
	id       string
	title    string
	dash     feeds.GithubDashboard
	section  githubSection
	selected int
	now      time.Time
}

func NewGithubWidget(id, title string) *GithubWidget {
	if title == "" {
		title = "GitHub"
	}
	return &GithubWidget{id: id, title: title, now: time.Now()}
}

func (w *GithubWidget) ID() string          { return w.id }
func (w *GithubWidget) Title() string       { return w.title }
func (w *GithubWidget) MinSize() (int, int) { return 28, 4 }
func (w *GithubWidget) Capturing() bool     { return false }

func (w *GithubWidget) Update(msg tea.Msg) tea.Cmd {
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
		if dash, ok := msg.Data.(feeds.GithubDashboard); ok {
			w.dash = dash
			w.selected = components.ClampIndex(w.selected, w.sectionLen())
			w.markOK(msg.Timestamp)
		}
	}
	return nil
}

func (w *GithubWidget) HandleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "s":
		w.section = (w.section + 1) % 3
		w.selected = 0
		return nil, true
	case "j", "down":
		w.selected = components.ClampIndex(w.selected+1, w.sectionLen())
		return nil, true
	case "k", "up":
		w.selected = components.ClampIndex(w.selected-1, w.sectionLen())
		return nil, true
	case "o":
		if w.sectionLen() == 0 {
			return nil, false
		}
		return openURL(w.selectedURL()), true
	case "enter":
		if w.sectionLen() == 0 {
			return nil, false
		}
		id := w.id
		return func() tea.Msg { return app.FeedInteractEvent{WidgetID: id} }, true
	}
	return nil, false
}

func (w *GithubWidget) selectedURL() string {
	switch w.section {
	case sectionPullRequests:
		pr := w.dash.PullRequests[w.selected]
		return fmt.Sprintf("https://github.com/%s/pull/%d", pr.Repository, pr.Number)
	case sectionCommits:
		return w.dash.Commits[w.selected].URL
	default:
		return w.dash.Notifications[w.selected].URL
	}
}

func (w *GithubWidget) sectionLen() int {
	switch w.section {
	case sectionPullRequests:
		return len(w.dash.PullRequests)
	case sectionCommits:
		return len(w.dash.Commits)
	default:
		return len(w.dash.Notifications)
	}
}

func (w *GithubWidget) sectionName() string {
	switch w.section {
	case sectionPullRequests:
		return "Pull Requests"
	case sectionCommits:
		return "Commits"
	default:
		return "Notifications"
	}
}

func (w *GithubWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.lastOK.IsZero() {
		if w.lastErr != nil {
			return components.FitBlock(w.footer(width, w.now), width, height)
		}
		return centerMessage("loading…", width, height)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Current.Title)).
		Render(components.Truncate(fmt.Sprintf("%s (%d)", w.sectionName(), w.sectionLen()), width))

	var rows []string
	switch w.section {
	case sectionPullRequests:
		for _, pr := range w.dash.PullRequests {
			mark := " "
			if pr.Draft {
				mark = "◌"
			}
			rows = append(rows, fmt.Sprintf("%s #%d %s %s", mark, pr.Number, pr.Repository, pr.Title))
		}
	case sectionCommits:
		for _, c := range w.dash.Commits {
			sha := c.SHA
			if len(sha) > 7 {
				sha = sha[:7]
			}
			rows = append(rows, fmt.Sprintf("%s %s %s", sha, c.Repository, c.Message))
		}
	default:
		for _, n := range w.dash.Notifications {
			mark := " "
			if n.Unread {
				mark = "●"
			}
			rows = append(rows, fmt.Sprintf("%s %s %s", mark, n.Repository, n.Title))
		}
	}

	body := height - 1
	if body < 1 {
		return components.FitBlock(header, width, height)
	}
	var list string
	if len(rows) == 0 {
		list = centerMessage("nothing here", width, body)
	} else {
		list = w.listWithFooter(rows, w.selected, width, body, w.now)
	}
	return components.FitBlock(header+"\n"+list, width, height)
}
