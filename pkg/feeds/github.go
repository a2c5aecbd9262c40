package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

const githubDefaultBaseURL = "https://api.github.com"

// GithubFetcher pulls notifications, authored pull requests, and recent
// events for the authenticated user.
type GithubFetcher struct {
	BaseURL  string
	Token    string
	MaxItems int
	Client   *http.Client
}

// NewGithubFetcher returns a fetcher authenticated with the token found
// in the given environment variable.
func NewGithubFetcher(tokenEnv string, maxItems int) *GithubFetcher {
	if maxItems <= 0 {
		maxItems = 10
	}
	return &GithubFetcher{
		BaseURL:  githubDefaultBaseURL,
		Token:    os.Getenv(tokenEnv),
		MaxItems: maxItems,
		Client:   http.DefaultClient,
	}
}

// Fetch implements Fetcher. Returns *GithubDashboard.
func (f *GithubFetcher) Fetch(ctx context.Context) (any, error) {
	if f.Token == "" {
		return nil, fmt.Errorf("github: no token configured")
	}

	dash := &GithubDashboard{}

	notifs, err := f.fetchNotifications(ctx)
	if err != nil {
		return nil, err
	}
	dash.Notifications = notifs

	// PRs and events are best-effort; notifications alone are a usable
	// dashboard.
	if prs, err := f.fetchPullRequests(ctx); err == nil {
		dash.PullRequests = prs
	}
	if commits, err := f.fetchRecentCommits(ctx); err == nil {
		dash.Commits = commits
	}

	return dash, nil
}

func (f *GithubFetcher) fetchNotifications(ctx context.Context) ([]GithubNotification, error) {
	var raw []struct {
		ID      string `json:"id"`
		Unread  bool   `json:"unread"`
		Reason  string `json:"reason"`
		Updated string `json:"updated_at"`
		Subject struct {
			Title string `json:"title"`
			Type  string `json:"type"`
			URL   string `json:"url"`
		} `json:"subject"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}
	if err := f.getJSON(ctx, "/notifications", &raw); err != nil {
		return nil, fmt.Errorf("github: notifications: %w", err)
	}

	if len(raw) > f.MaxItems {
		raw = raw[:f.MaxItems]
	}
	out := make([]GithubNotification, 0, len(raw))
	for _, n := range raw {
		out = append(out, GithubNotification{
			ID:         n.ID,
			Title:      n.Subject.Title,
			Type:       n.Subject.Type,
			Repository: n.Repository.FullName,
			URL:        n.Subject.URL,
			Unread:     n.Unread,
			Reason:     n.Reason,
			UpdatedAt:  n.Updated,
		})
	}
	return out, nil
}

func (f *GithubFetcher) fetchPullRequests(ctx context.Context) ([]GithubPullRequest, error) {
	var raw struct {
		Items []struct {
			Number        int    `json:"number"`
			Title         string `json:"title"`
			State         string `json:"state"`
			Draft         bool   `json:"draft"`
			Comments      int    `json:"comments"`
			RepositoryURL string `json:"repository_url"`
			User          struct {
				Login string `json:"login"`
			} `json:"user"`
		} `json:"items"`
	}
	if err := f.getJSON(ctx, "/search/issues?q=is:pr+is:open+author:@me", &raw); err != nil {
		return nil, fmt.Errorf("github: pull requests: %w", err)
	}

	out := make([]GithubPullRequest, 0, len(raw.Items))
	for _, pr := range raw.Items {
		if len(out) >= f.MaxItems {
			break
		}
		out = append(out, GithubPullRequest{
			Number:     pr.Number,
			Title:      pr.Title,
			Repository: shortRepoName(pr.RepositoryURL),
			State:      pr.State,
			Author:     pr.User.Login,
			Draft:      pr.Draft,
			Comments:   pr.Comments,
		})
	}
	return out, nil
}

func (f *GithubFetcher) fetchRecentCommits(ctx context.Context) ([]GithubCommit, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := f.getJSON(ctx, "/user", &user); err != nil {
		return nil, fmt.Errorf("github: user: %w", err)
	}

	var raw []struct {
		Type string `json:"type"`
		Repo struct {
			Name string `json:"name"`
		} `json:"repo"`
		Payload struct {
			Ref     string `json:"ref"`
			Commits []struct {
				SHA     string `json:"sha"`
				Message string `json:"message"`
				URL     string `json:"url"`
				Author  struct {
					Name string `json:"name"`
				} `json:"author"`
			} `json:"commits"`
		} `json:"payload"`
	}
	if err := f.getJSON(ctx, "/users/"+user.Login+"/events?per_page=30", &raw); err != nil {
		return nil, fmt.Errorf("github: events: %w", err)
	}

	var out []GithubCommit
	for _, ev := range raw {
		if ev.Type != "PushEvent" {
			continue
		}
		for _, c := range ev.Payload.Commits {
			if len(out) >= f.MaxItems {
				return out, nil
			}
			out = append(out, GithubCommit{
				SHA:        c.SHA,
				Message:    firstLine(c.Message),
				Author:     c.Author.Name,
				Repository: ev.Repo.Name,
				Branch:     shortRefName(ev.Payload.Ref),
				URL:        c.URL,
			})
		}
	}
	return out, nil
}

func (f *GithubFetcher) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+f.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "feedtui/1.0")

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

func shortRepoName(repoURL string) string {
	// repository_url looks like https://api.github.com/repos/owner/name
	const marker = "/repos/"
	for i := 0; i+len(marker) <= len(repoURL); i++ {
		if repoURL[i:i+len(marker)] == marker {
			return repoURL[i+len(marker):]
		}
	}
	return repoURL
}

func shortRefName(ref string) string {
	const prefix = "refs/heads/"
	if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
		return ref[len(prefix):]
	}
	return ref
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
