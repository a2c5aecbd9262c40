package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Bridge shells out to an external helper program for the social
// widget: reading the timeline, posting, replying, and searching. The
// helper owns all authentication; feedtui only speaks its tiny CLI
// protocol (subcommand + args in, JSON posts out).
type Bridge struct {
	argv     []string
	maxItems int
}

// NewBridge parses the configured command line. An empty command yields
// a nil bridge; callers treat that as "social features disabled".
func NewBridge(cmdline string, maxItems int) *Bridge {
	argv := strings.Fields(cmdline)
	if len(argv) == 0 {
		return nil
	}
	if maxItems <= 0 {
		maxItems = 20
	}
	return &Bridge{argv: argv, maxItems: maxItems}
}

// Fetch implements Fetcher by reading the timeline.
func (b *Bridge) Fetch(ctx context.Context) (any, error) {
	return b.Timeline(ctx)
}

// Timeline returns the most recent posts.
func (b *Bridge) Timeline(ctx context.Context) ([]Post, error) {
	return b.posts(ctx, "timeline")
}

// Search returns posts matching the query.
func (b *Bridge) Search(ctx context.Context, query string) ([]Post, error) {
	return b.posts(ctx, "search", query)
}

// Post publishes a new post.
func (b *Bridge) Post(ctx context.Context, text string) error {
	_, err := b.run(ctx, "post", text)
	return err
}

// Reply publishes a reply to the given post ID.
func (b *Bridge) Reply(ctx context.Context, id, text string) error {
	_, err := b.run(ctx, "reply", id, text)
	return err
}

func (b *Bridge) posts(ctx context.Context, args ...string) ([]Post, error) {
	out, err := b.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(out, &posts); err != nil {
		return nil, fmt.Errorf("bridge output: %w", err)
	}
	if len(posts) > b.maxItems {
		posts = posts[:b.maxItems]
	}
	return posts, nil
}

func (b *Bridge) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, b.argv[0], append(b.argv[1:], args...)...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("bridge %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("bridge %s: %w", args[0], err)
	}
	return out, nil
}
