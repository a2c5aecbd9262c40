package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

const hnDefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// HackerNewsFetcher pulls the top front-page stories from the official
// Firebase API: one request for the ID list, then one per story.
type HackerNewsFetcher struct {
	BaseURL  string
	MaxItems int
	Client   *http.Client
}

// NewHackerNewsFetcher returns a fetcher for up to maxItems stories.
func NewHackerNewsFetcher(maxItems int) *HackerNewsFetcher {
	if maxItems <= 0 {
		maxItems = 15
	}
	return &HackerNewsFetcher{
		BaseURL:  hnDefaultBaseURL,
		MaxItems: maxItems,
		Client:   http.DefaultClient,
	}
}

// Fetch implements Fetcher. Returns []HnStory.
func (f *HackerNewsFetcher) Fetch(ctx context.Context) (any, error) {
	var ids []int64
	if err := f.getJSON(ctx, f.BaseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("hackernews: top stories: %w", err)
	}
	if len(ids) > f.MaxItems {
		ids = ids[:f.MaxItems]
	}

	type hnItem struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Score       int    `json:"score"`
		By          string `json:"by"`
		Descendants int    `json:"descendants"`
	}

	// Fetch items concurrently; a failed item leaves a gap rather than
	// failing the whole refresh.
	stories := make([]*HnStory, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			var item hnItem
			url := fmt.Sprintf("%s/item/%d.json", f.BaseURL, id)
			if err := f.getJSON(ctx, url, &item); err != nil || item.Title == "" {
				return
			}
			stories[i] = &HnStory{
				ID:       item.ID,
				Title:    item.Title,
				URL:      item.URL,
				Score:    item.Score,
				By:       item.By,
				Comments: item.Descendants,
			}
		}(i, id)
	}
	wg.Wait()

	out := make([]HnStory, 0, len(stories))
	for _, s := range stories {
		if s != nil {
			out = append(out, *s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("hackernews: no stories fetched")
	}
	return out, nil
}

func (f *HackerNewsFetcher) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
