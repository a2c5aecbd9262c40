package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

const youtubeDefaultBaseURL = "https://www.youtube.com"

// YoutubeFetcher pulls recent uploads from one or more channel Atom
// feeds. Channel IDs come from config; no API key is required.
type YoutubeFetcher struct {
	BaseURL    string
	ChannelIDs []string
	MaxItems   int
	Client     *http.Client
}

// NewYoutubeFetcher returns a fetcher merging up to maxItems uploads
// across the given channel IDs.
func NewYoutubeFetcher(channelIDs []string, maxItems int) *YoutubeFetcher {
	if maxItems <= 0 {
		maxItems = 15
	}
	return &YoutubeFetcher{
		BaseURL:    youtubeDefaultBaseURL,
		ChannelIDs: channelIDs,
		MaxItems:   maxItems,
		Client:     http.DefaultClient,
	}
}

type ytFeed struct {
	Entries []struct {
		VideoID   string `xml:"videoId"`
		Title     string `xml:"title"`
		Published string `xml:"published"`
		Author    struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Link struct {
			Href string `xml:"href,attr"`
		} `xml:"link"`
	} `xml:"entry"`
}

// Fetch implements Fetcher. Returns []YoutubeVideo.
func (f *YoutubeFetcher) Fetch(ctx context.Context) (any, error) {
	var videos []YoutubeVideo
	var lastErr error
	for _, ch := range f.ChannelIDs {
		chVideos, err := f.fetchChannel(ctx, ch)
		if err != nil {
			lastErr = err
			continue
		}
		videos = append(videos, chVideos...)
	}
	if len(videos) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("youtube: %w", lastErr)
		}
		return nil, fmt.Errorf("youtube: no uploads found")
	}
	if len(videos) > f.MaxItems {
		videos = videos[:f.MaxItems]
	}
	return videos, nil
}

func (f *YoutubeFetcher) fetchChannel(ctx context.Context, channelID string) ([]YoutubeVideo, error) {
	url := f.BaseURL + "/feeds/videos.xml?channel_id=" + channelID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("channel %s: unexpected status %s", channelID, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var feed ytFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("channel %s: parse: %w", channelID, err)
	}

	videos := make([]YoutubeVideo, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		videos = append(videos, YoutubeVideo{
			ID:        e.VideoID,
			Title:     e.Title,
			Channel:   e.Author.Name,
			Published: e.Published,
			URL:       e.Link.Href,
		})
	}
	return videos, nil
}
