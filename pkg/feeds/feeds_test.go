package feeds

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHackerNewsFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/topstories.json":
			fmt.Fprint(w, `[1, 2, 3]`)
		case "/item/1.json":
			fmt.Fprint(w, `{"id":1,"title":"First","url":"http://a","score":100,"by":"alice","descendants":42}`)
		case "/item/2.json":
			fmt.Fprint(w, `{"id":2,"title":"Second","score":50,"by":"bob"}`)
		case "/item/3.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHackerNewsFetcher(5)
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	stories, ok := got.([]HnStory)
	if !ok {
		t.Fatalf("payload type = %T, want []HnStory", got)
	}
	// Item 3 failed; the other two survive in order.
	if len(stories) != 2 {
		t.Fatalf("stories = %d, want 2", len(stories))
	}
	if stories[0].Title != "First" || stories[0].Score != 100 || stories[0].Comments != 42 {
		t.Errorf("story[0] = %+v", stories[0])
	}
	if stories[1].By != "bob" {
		t.Errorf("story[1].By = %q, want bob", stories[1].By)
	}
}

func TestHackerNewsFetcherAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewHackerNewsFetcher(5)
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("expected error when the API is down")
	}
}

func TestStocksFetcherParsesCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Symbol,Date,Time,Open,High,Low,Close,Volume\n")
		fmt.Fprint(w, "AAPL.US,2026-08-28,22:00:00,100,110,99,105,12345\n")
		fmt.Fprint(w, "BAD.US,N/D,N/D,N/D,N/D,N/D,N/D,N/D\n")
	}))
	defer srv.Close()

	f := NewStocksFetcher([]string{"AAPL.US", "BAD.US"})
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	quotes := got.([]StockQuote)
	if len(quotes) != 1 {
		t.Fatalf("quotes = %d, want 1 (N/D row skipped)", len(quotes))
	}
	q := quotes[0]
	if q.Symbol != "AAPL.US" || q.Price != 105 {
		t.Errorf("quote = %+v", q)
	}
	if q.Change != 5 || q.ChangePercent != 5 {
		t.Errorf("change = %v (%v%%), want 5 (5%%)", q.Change, q.ChangePercent)
	}
}

func TestParseFeedRSS(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Example News</title>
  <item><title>Story A</title><link>http://x/a</link><pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate></item>
  <item><title>Story B</title><link>http://x/b</link></item>
</channel></rss>`)

	items, err := parseFeed(body)
	if err != nil {
		t.Fatalf("parseFeed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Source != "Example News" || items[0].Title != "Story A" {
		t.Errorf("item[0] = %+v", items[0])
	}
}

func TestParseFeedAtom(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Blog</title>
  <entry><id>1</id><title>Post</title><published>2026-08-01</published>
    <link href="http://x/post"/><author><name>carol</name></author></entry>
</feed>`)

	items, err := parseFeed(body)
	if err != nil {
		t.Fatalf("parseFeed: %v", err)
	}
	if len(items) != 1 || items[0].Link != "http://x/post" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseFeedGarbage(t *testing.T) {
	if _, err := parseFeed([]byte("not xml at all")); err == nil {
		t.Error("expected error for non-XML input")
	}
}

func TestSportsFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/basketball/nba/scoreboard" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"events":[{"date":"2026-08-29T23:00Z",
			"status":{"type":{"shortDetail":"Final"}},
			"competitions":[{"competitors":[
				{"homeAway":"home","score":"101","team":{"abbreviation":"BOS"}},
				{"homeAway":"away","score":"99","team":{"abbreviation":"LAL"}}
			]}]}]}`)
	}))
	defer srv.Close()

	f := NewSportsFetcher([]string{"nba", "unknown-league"})
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	events := got.([]SportsEvent)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.HomeTeam != "BOS" || e.HomeScore != 101 || e.AwayTeam != "LAL" || e.AwayScore != 99 {
		t.Errorf("event = %+v", e)
	}
	if e.Status != "Final" {
		t.Errorf("status = %q, want Final", e.Status)
	}
}

func TestGithubFetcherNotifications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			http.Error(w, "bad auth", http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/notifications":
			fmt.Fprint(w, `[{"id":"n1","unread":true,"reason":"review_requested",
				"updated_at":"2026-08-29T00:00:00Z",
				"subject":{"title":"Fix the bug","type":"PullRequest","url":"http://x"},
				"repository":{"full_name":"owner/repo"}}]`)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	t.Setenv("TEST_GH_TOKEN", "test-token")
	f := NewGithubFetcher("TEST_GH_TOKEN", 10)
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	dash := got.(*GithubDashboard)
	if len(dash.Notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(dash.Notifications))
	}
	n := dash.Notifications[0]
	if n.Repository != "owner/repo" || !n.Unread || n.Reason != "review_requested" {
		t.Errorf("notification = %+v", n)
	}
}

func TestGithubFetcherNoToken(t *testing.T) {
	f := NewGithubFetcher("FEEDTUI_TEST_UNSET_ENV", 10)
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("expected error when no token is configured")
	}
}

func TestArchiveFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("url")
		if q == "" {
			http.Error(w, "missing url", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `[["timestamp","original","statuscode"],
			["20260815120000","https://example.social/u/status/1","200"]]`)
	}))
	defer srv.Close()

	f := NewArchiveFetcher("example.social/u", 10)
	f.BaseURL = srv.URL
	f.Client = srv.Client()

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	items := got.([]ArchiveItem)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].DateDisplay != "2026-08-15 12:00" {
		t.Errorf("DateDisplay = %q", items[0].DateDisplay)
	}
	if items[0].ArchiveURL == "" || items[0].OriginalURL == "" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestFormatCdxTimestamp(t *testing.T) {
	tests := []struct{ in, want string }{
		{"20260815120000", "2026-08-15 12:00"},
		{"short", "short"},
	}
	for _, tt := range tests {
		if got := formatCdxTimestamp(tt.in); got != tt.want {
			t.Errorf("formatCdxTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPixelFetcher(t *testing.T) {
	// 4x2 image: left half red, right half blue.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	path := filepath.Join(t.TempDir(), "art.png")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(out, img); err != nil {
		t.Fatal(err)
	}
	out.Close()

	f := NewPixelFetcher(path, 4)
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	pix := got.(*PixelImage)
	if pix.Width != 4 || pix.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", pix.Width, pix.Height)
	}
	if c := pix.At(0, 0); c[0] != 255 || c[2] != 0 {
		t.Errorf("pixel (0,0) = %v, want red", c)
	}
	if c := pix.At(3, 1); c[2] != 255 || c[0] != 0 {
		t.Errorf("pixel (3,1) = %v, want blue", c)
	}
	// Out-of-range is black.
	if c := pix.At(99, 99); c != ([3]uint8{}) {
		t.Errorf("out-of-range pixel = %v, want black", c)
	}
}

func TestPixelFetcherMissingFile(t *testing.T) {
	f := NewPixelFetcher(filepath.Join(t.TempDir(), "missing.png"), 16)
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("expected error for missing image file")
	}
}

func TestShortRepoName(t *testing.T) {
	got := shortRepoName("https://api.github.com/repos/owner/name")
	if got != "owner/name" {
		t.Errorf("shortRepoName = %q, want owner/name", got)
	}
}
