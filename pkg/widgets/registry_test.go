package widgets

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

func testDeps() Deps {
	return Deps{
		Engine:         companion.NewEngine(companion.New(companion.SpeciesCat, time.Now())),
		DefaultRefresh: time.Minute,
	}
}

func TestBuildUnknownTypeFailsOnlyThatWidget(t *testing.T) {
	specs := []config.WidgetSpec{
		{Type: "clock", Row: 0, Col: 0},
		{Type: "flurble", Row: 0, Col: 1},
		{Type: "hackernews", Row: 1, Col: 0},
	}
	res := Build(specs, testDeps())

	if len(res.Widgets) != 2 {
		t.Fatalf("built %d widgets, want 2", len(res.Widgets))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	if res.Errors[0].Spec.Type != "flurble" {
		t.Errorf("error is for %q, want flurble", res.Errors[0].Spec.Type)
	}
}

func TestBuildValidatesRequiredOptions(t *testing.T) {
	tests := []struct {
		name string
		spec config.WidgetSpec
	}{
		{"stocks without symbols", config.WidgetSpec{Type: "stocks"}},
		{"rss without urls", config.WidgetSpec{Type: "rss"}},
		{"sports without leagues", config.WidgetSpec{Type: "sports"}},
		{"github without token env", config.WidgetSpec{Type: "github"}},
		{"youtube without channels", config.WidgetSpec{Type: "youtube"}},
		{"twitter without bridge", config.WidgetSpec{Type: "twitter"}},
		{"twitterarchive without query", config.WidgetSpec{Type: "twitterarchive"}},
		{"pixelart without image", config.WidgetSpec{Type: "pixelart"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Build([]config.WidgetSpec{tt.spec}, testDeps())
			if len(res.Widgets) != 0 || len(res.Errors) != 1 {
				t.Errorf("widgets=%d errors=%d, want 0/1", len(res.Widgets), len(res.Errors))
			}
		})
	}
}

func TestBuildSchedulerSources(t *testing.T) {
	specs := []config.WidgetSpec{
		{Type: "hackernews", Row: 0, Col: 0, Refresh: config.Duration{Duration: 5 * time.Minute}},
		{Type: "clock", Row: 0, Col: 1},
		{Type: "pet", Row: 1, Col: 0},
		{Type: "sysmetrics", Row: 1, Col: 1},
	}
	res := Build(specs, testDeps())

	if len(res.Widgets) != 4 {
		t.Fatalf("built %d widgets, want 4", len(res.Widgets))
	}
	// Only the data-backed widgets get refresh units.
	if len(res.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(res.Sources))
	}
	if res.Sources[0].Interval != 5*time.Minute {
		t.Errorf("per-widget refresh override lost: %v", res.Sources[0].Interval)
	}
	if res.Sources[1].Interval != time.Minute {
		t.Errorf("default refresh not applied: %v", res.Sources[1].Interval)
	}
}

func TestBuildDuplicateIDLaterWins(t *testing.T) {
	specs := []config.WidgetSpec{
		{Type: "clock", Title: "first", Row: 0, Col: 0},
		{Type: "clock", Title: "second", Row: 0, Col: 0},
	}
	res := Build(specs, testDeps())

	if len(res.Widgets) != 1 {
		t.Fatalf("built %d widgets, want 1", len(res.Widgets))
	}
	if res.Widgets[0].Title() != "second" {
		t.Errorf("kept %q, want the later declaration", res.Widgets[0].Title())
	}
	if len(res.Errors) != 1 {
		t.Errorf("duplicate should be reported as a config warning")
	}
}

func TestBuildDuplicateCellDropsLoserSource(t *testing.T) {
	specs := []config.WidgetSpec{
		{Type: "hackernews", Title: "news", Row: 0, Col: 0},
		{Type: "clock", Title: "clock", Row: 0, Col: 0},
	}
	res := Build(specs, testDeps())

	if len(res.Widgets) != 1 {
		t.Fatalf("built %d widgets, want 1", len(res.Widgets))
	}
	if res.Widgets[0].Title() != "clock" {
		t.Errorf("kept %q, want the later declaration", res.Widgets[0].Title())
	}
	// The replaced hackernews widget never renders, so its fetch unit
	// must not survive either.
	if len(res.Sources) != 0 {
		t.Errorf("sources = %d, want none for a tick-only winner", len(res.Sources))
	}
	if len(res.Errors) != 1 {
		t.Errorf("duplicate cell should be reported as a config warning")
	}
}
