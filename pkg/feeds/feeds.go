// Package feeds defines the data-source boundary for feedtui widgets:
// typed payload structs plus the Fetcher interface the refresh scheduler
// invokes. Fetchers are thin clients; the scheduler interprets only
// success or failure, never payload internals.
package feeds

import (
	"context"
	"time"
)

// Fetcher is the interface all widget data sources implement. Fetch may
// block on I/O; the scheduler always runs it off the UI loop with a
// deadline on ctx. The returned value is opaque here; widgets
// type-assert based on their own type tag.
type Fetcher interface {
	Fetch(ctx context.Context) (any, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (any, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (any, error) {
	return f(ctx)
}

// HnStory is one Hacker News front-page entry.
type HnStory struct {
	ID       int64
	Title    string
	URL      string
	Score    int
	By       string
	Comments int
}

// StockQuote is one market quote row.
type StockQuote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	Name          string
}

// RssItem is one syndicated article.
type RssItem struct {
	Title       string
	Link        string
	Published   string
	Source      string
	Description string
}

// SportsEvent is one scheduled or in-progress game.
type SportsEvent struct {
	League    string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
	StartTime string
}

// GithubNotification is one unread or recent notification.
type GithubNotification struct {
	ID         string
	Title      string
	Type       string
	Repository string
	URL        string
	Unread     bool
	Reason     string
	UpdatedAt  string
}

// GithubPullRequest is one authored or review-requested pull request.
type GithubPullRequest struct {
	Number     int
	Title      string
	Repository string
	State      string
	Author     string
	Draft      bool
	Comments   int
}

// GithubCommit is one recent commit on a watched branch.
type GithubCommit struct {
	SHA        string
	Message    string
	Author     string
	Repository string
	Branch     string
	URL        string
}

// GithubDashboard aggregates the three GitHub sections.
type GithubDashboard struct {
	Notifications []GithubNotification
	PullRequests  []GithubPullRequest
	Commits       []GithubCommit
}

// YoutubeVideo is one channel upload.
type YoutubeVideo struct {
	ID        string
	Title     string
	Channel   string
	Published string
	URL       string
}

// Post is one short-form social post, shown by the social widget and
// returned by archive lookups.
type Post struct {
	ID     string
	Author string
	Text   string
	URL    string
}

// ArchiveItem is one snapshot record from the web archive CDX index.
type ArchiveItem struct {
	Timestamp   string
	OriginalURL string
	ArchiveURL  string
	DateDisplay string
}

// SysSnapshot is a point-in-time system metrics sample.
type SysSnapshot struct {
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
	MemTotal   uint64
	Load1      float64
	Load5      float64
	Load15     float64
	Uptime     time.Duration
	Hostname   string
}

// PixelImage is a decoded, downscaled image ready for half-block cell
// rendering. Pixels is row-major, Height rows of Width RGB triples.
type PixelImage struct {
	Width          int
	Height         int
	Pixels         [][3]uint8
	OriginalWidth  int
	OriginalHeight int
}

// At returns the RGB triple at (x, y). Out-of-range coordinates return
// black.
func (p *PixelImage) At(x, y int) [3]uint8 {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return [3]uint8{}
	}
	return p.Pixels[y*p.Width+x]
}
