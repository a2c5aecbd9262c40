package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

// RssFetcher pulls and merges one or more RSS 2.0 or Atom feeds.
type RssFetcher struct {
	URLs     []string
	MaxItems int
	Client   *http.Client
}

// NewRssFetcher returns a fetcher that merges up to maxItems entries
// across the given feed URLs.
func NewRssFetcher(urls []string, maxItems int) *RssFetcher {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &RssFetcher{URLs: urls, MaxItems: maxItems, Client: http.DefaultClient}
}

// rssDoc covers the subset of RSS 2.0 we render.
type rssDoc struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// atomDoc covers the subset of Atom we render (youtube channel feeds are
// Atom, so this doubles as the youtube decoder).
type atomDoc struct {
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Published string `xml:"published"`
	Link      struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Author struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// Fetch implements Fetcher. Returns []RssItem. A feed that fails to
// fetch or parse is skipped; the refresh fails only if every feed fails.
func (f *RssFetcher) Fetch(ctx context.Context) (any, error) {
	var items []RssItem
	var lastErr error
	for _, url := range f.URLs {
		feedItems, err := f.fetchOne(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		items = append(items, feedItems...)
	}
	if len(items) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("rss: all feeds failed: %w", lastErr)
		}
		return nil, fmt.Errorf("rss: no items")
	}
	if len(items) > f.MaxItems {
		items = items[:f.MaxItems]
	}
	return items, nil
}

func (f *RssFetcher) fetchOne(ctx context.Context, url string) ([]RssItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "feedtui/1.0")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

// parseFeed decodes body as RSS 2.0 first, then Atom.
func parseFeed(body []byte) ([]RssItem, error) {
	var rss rssDoc
	if err := xml.Unmarshal(body, &rss); err == nil && len(rss.Channel.Items) > 0 {
		items := make([]RssItem, 0, len(rss.Channel.Items))
		for _, it := range rss.Channel.Items {
			items = append(items, RssItem{
				Title:       it.Title,
				Link:        it.Link,
				Published:   it.PubDate,
				Source:      rss.Channel.Title,
				Description: it.Description,
			})
		}
		return items, nil
	}

	var atom atomDoc
	if err := xml.Unmarshal(body, &atom); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(atom.Entries) == 0 {
		return nil, fmt.Errorf("parse feed: no recognizable entries")
	}
	items := make([]RssItem, 0, len(atom.Entries))
	for _, e := range atom.Entries {
		items = append(items, RssItem{
			Title:     e.Title,
			Link:      e.Link.Href,
			Published: e.Published,
			Source:    atom.Title,
		})
	}
	return items, nil
}
