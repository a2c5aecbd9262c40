package widgets

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
	"gitlab.com/tinyland/lab/feedtui/pkg/schedule"
)

// Deps carries the shared services widgets are built against.
type Deps struct {
	Engine         *companion.Engine
	DefaultRefresh time.Duration
}

// ConfigError records one widget spec that could not be built. It never
// aborts the build; the dashboard runs with the remaining widgets.
type ConfigError struct {
	Spec config.WidgetSpec
	Err  error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("widget %s: %v", e.Spec.ID(), e.Err)
}

// BuildResult is the output of Build: the widgets in declaration order,
// the scheduler sources for the data-backed ones, and the per-spec
// failures.
type BuildResult struct {
	Widgets []app.Widget
	Sources []schedule.Source
	Errors  []ConfigError
}

// Build instantiates every widget spec. An unknown type tag or missing
// required option fails only that spec. A later spec on the same grid
// cell replaces an earlier one, widget and scheduler source both,
// matching the tie-break in pkg/layout.
func Build(specs []config.WidgetSpec, deps Deps) BuildResult {
	var res BuildResult
	byCell := map[[2]int]int{}

	for _, spec := range specs {
		w, src, err := build(spec, deps)
		if err != nil {
			res.Errors = append(res.Errors, ConfigError{Spec: spec, Err: err})
			continue
		}

		cell := [2]int{spec.Row, spec.Col}
		if prev, dup := byCell[cell]; dup {
			res.Errors = append(res.Errors, ConfigError{
				Spec: spec,
				Err:  fmt.Errorf("duplicate cell %d,%d, keeping later declaration", spec.Row, spec.Col),
			})
			removeSource(&res, res.Widgets[prev].ID())
			res.Widgets[prev] = w
			if src != nil {
				res.Sources = append(res.Sources, *src)
			}
			continue
		}

		byCell[cell] = len(res.Widgets)
		res.Widgets = append(res.Widgets, w)
		if src != nil {
			res.Sources = append(res.Sources, *src)
		}
	}
	return res
}

func removeSource(res *BuildResult, id string) {
	for i := range res.Sources {
		if res.Sources[i].ID == id {
			res.Sources = append(res.Sources[:i], res.Sources[i+1:]...)
			return
		}
	}
}

// build constructs one widget and, for data-backed types, its scheduler
// source. Tick-only widgets return a nil source.
func build(spec config.WidgetSpec, deps Deps) (app.Widget, *schedule.Source, error) {
	id := spec.ID()
	interval := spec.RefreshOr(deps.DefaultRefresh)

	src := func(f feeds.Fetcher) *schedule.Source {
		return &schedule.Source{ID: id, Fetcher: f, Interval: interval}
	}

	switch spec.Type {
	case "hackernews":
		return NewHackerNewsWidget(id, spec.Title), src(feeds.NewHackerNewsFetcher(spec.MaxItems)), nil

	case "stocks":
		if len(spec.Symbols) == 0 {
			return nil, nil, fmt.Errorf("stocks widget needs symbols")
		}
		return NewStocksWidget(id, spec.Title), src(feeds.NewStocksFetcher(spec.Symbols)), nil

	case "rss":
		if len(spec.FeedURLs) == 0 {
			return nil, nil, fmt.Errorf("rss widget needs feed_urls")
		}
		return NewRssWidget(id, spec.Title), src(feeds.NewRssFetcher(spec.FeedURLs, spec.MaxItems)), nil

	case "sports":
		if len(spec.Leagues) == 0 {
			return nil, nil, fmt.Errorf("sports widget needs leagues")
		}
		return NewSportsWidget(id, spec.Title), src(feeds.NewSportsFetcher(spec.Leagues)), nil

	case "github":
		if spec.TokenEnv == "" {
			return nil, nil, fmt.Errorf("github widget needs token_env")
		}
		return NewGithubWidget(id, spec.Title), src(feeds.NewGithubFetcher(spec.TokenEnv, spec.MaxItems)), nil

	case "youtube":
		if len(spec.Channels) == 0 {
			return nil, nil, fmt.Errorf("youtube widget needs channels")
		}
		return NewYoutubeWidget(id, spec.Title), src(feeds.NewYoutubeFetcher(spec.Channels, spec.MaxItems)), nil

	case "twitter":
		bridge := feeds.NewBridge(spec.BridgeCmd, spec.MaxItems)
		if bridge == nil {
			return nil, nil, fmt.Errorf("twitter widget needs bridge_cmd")
		}
		return NewSocialWidget(id, spec.Title, bridge), src(bridge), nil

	case "twitterarchive":
		if spec.ArchiveQuery == "" {
			return nil, nil, fmt.Errorf("twitterarchive widget needs archive_query")
		}
		return NewArchiveWidget(id, spec.Title), src(feeds.NewArchiveFetcher(spec.ArchiveQuery, spec.MaxItems)), nil

	case "clock":
		return NewClockWidget(id, spec.Title, spec.Timezones), nil, nil

	case "pixelart":
		if spec.ImagePath == "" {
			return nil, nil, fmt.Errorf("pixelart widget needs image_path")
		}
		return NewPixelArtWidget(id, spec.Title), src(feeds.NewPixelFetcher(spec.ImagePath, spec.PixelSize)), nil

	case "pet":
		if deps.Engine == nil {
			return nil, nil, fmt.Errorf("pet widget needs a companion engine")
		}
		return NewPetWidget(id, spec.Title, deps.Engine), nil, nil

	case "sysmetrics":
		return NewSysMetricsWidget(id, spec.Title), src(feeds.NewSysMetricsFetcher()), nil
	}

	return nil, nil, fmt.Errorf("unknown widget type %q", spec.Type)
}
