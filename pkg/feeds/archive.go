package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const cdxDefaultBaseURL = "https://web.archive.org"

// ArchiveFetcher queries the Wayback Machine CDX index for snapshots of
// a social profile's post URLs.
type ArchiveFetcher struct {
	BaseURL  string
	Query    string
	MaxItems int
	Client   *http.Client
}

// NewArchiveFetcher returns a fetcher for up to maxItems snapshot rows
// matching query (a profile URL or URL pattern).
func NewArchiveFetcher(query string, maxItems int) *ArchiveFetcher {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &ArchiveFetcher{
		BaseURL:  cdxDefaultBaseURL,
		Query:    query,
		MaxItems: maxItems,
		Client:   http.DefaultClient,
	}
}

// Fetch implements Fetcher. Returns []ArchiveItem.
//
// The CDX endpoint returns JSON rows [timestamp, original, statuscode]
// with a header row first. Queries are widened to /status/* so snapshot
// quota is spent on posts rather than profile or media pages.
func (f *ArchiveFetcher) Fetch(ctx context.Context) (any, error) {
	query := f.Query
	if !strings.Contains(query, "/status") {
		query = strings.TrimRight(query, "*/") + "/status/*"
	}

	cdxURL := fmt.Sprintf(
		"%s/cdx/search/cdx?url=%s&output=json&limit=%d&fl=timestamp,original,statuscode&filter=statuscode:200&collapse=urlkey",
		f.BaseURL, url.QueryEscape(query), f.MaxItems+1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cdxURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "feedtui/1.0")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("archive: parse cdx response: %w", err)
	}

	var items []ArchiveItem
	for i, row := range rows {
		if i == 0 || len(row) < 3 { // header row
			continue
		}
		ts := row[0]
		items = append(items, ArchiveItem{
			Timestamp:   ts,
			OriginalURL: row[1],
			ArchiveURL:  fmt.Sprintf("%s/web/%s/%s", f.BaseURL, ts, row[1]),
			DateDisplay: formatCdxTimestamp(ts),
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("archive: no snapshots for %q", f.Query)
	}
	return items, nil
}

// formatCdxTimestamp converts a 14-digit CDX timestamp (yyyyMMddHHmmss)
// to "yyyy-MM-dd HH:mm". Short or malformed stamps pass through as-is.
func formatCdxTimestamp(ts string) string {
	if len(ts) < 12 {
		return ts
	}
	return fmt.Sprintf("%s-%s-%s %s:%s", ts[0:4], ts[4:6], ts[6:8], ts[8:10], ts[10:12])
}
