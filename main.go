// feedtui is a terminal dashboard that aggregates live feeds (news,
// markets, sports, dev activity, media) into a configurable grid of
// panes, with a persistent virtual pet that levels up as you use it.
//
// Usage:
//
//	feedtui [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: XDG config dir)
//	-theme string   Color theme override (default|light|mono)
//	-verbose        Enable debug logging
//	-version        Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/feedtui/pkg/app"
	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/layout"
	"gitlab.com/tinyland/lab/feedtui/pkg/schedule"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
	"gitlab.com/tinyland/lab/feedtui/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		themeName   = flag.String("theme", "", "Color theme override")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("feedtui %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "feedtui requires an interactive terminal")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	// Theme: explicit flag wins, then config; the default palette flips
	// to the light variant on light terminal backgrounds.
	name := cfg.Theme.Name
	if *themeName != "" {
		name = *themeName
	}
	if name == "default" && !termenv.HasDarkBackground() {
		name = "light"
	}
	theme.SetCurrent(name)

	// Companion state: the save file survives restarts; a corrupt one
	// falls back to a fresh pet rather than blocking startup.
	species := companion.SpeciesCat
	for _, spec := range cfg.Widgets {
		if spec.Type == "pet" && spec.Species != "" {
			species = companion.Species(spec.Species)
			break
		}
	}
	engine := companion.NewEngine(companion.Load(cfg.Pet.SavePath, species, time.Now()))

	built := widgets.Build(cfg.Widgets, widgets.Deps{
		Engine:         engine,
		DefaultRefresh: cfg.General.RefreshInterval.Duration,
	})
	var warnings []string
	for _, cfgErr := range built.Errors {
		logger.Warn("widget config error", "error", cfgErr)
		warnings = append(warnings, cfgErr.Error())
	}
	if len(built.Widgets) == 0 {
		fmt.Fprintln(os.Stderr, "no usable widgets configured")
		os.Exit(1)
	}

	sched := schedule.New(schedule.Config{
		FetchTimeout: cfg.General.FetchTimeout.Duration,
		SpeedFactor:  engine.RefreshFactor,
		Logger:       logger,
	}, built.Sources...)

	model := app.New(app.Options{
		Widgets:       built.Widgets,
		Placements:    placements(cfg.Widgets, built.Widgets),
		Scheduler:     sched,
		Engine:        engine,
		SavePath:      cfg.Pet.SavePath,
		TickInterval:  cfg.General.TickInterval.Duration,
		FlushInterval: cfg.Pet.FlushInterval.Duration,
		Warnings:      warnings,
		Logger:        logger,
	})

	zone.NewGlobal()
	sched.Start(context.Background())
	defer sched.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		logger.Error("terminal error", "error", err)
		fmt.Fprintf(os.Stderr, "feedtui: %v\n", err)
		os.Exit(1)
	}

	// Final flush; per-event saves already covered level-ups and
	// purchases, this catches trailing XP.
	if engine.Dirty() {
		if err := companion.Save(cfg.Pet.SavePath, engine.Snapshot()); err != nil {
			logger.Warn("final companion save failed", "error", err)
		}
	}
}

// placements maps the built widgets back to their declared grid cells.
func placements(specs []config.WidgetSpec, built []app.Widget) []layout.Placement {
	ids := map[string]bool{}
	for _, w := range built {
		ids[w.ID()] = true
	}
	seen := map[string]bool{}
	var out []layout.Placement
	for _, spec := range specs {
		id := spec.ID()
		if !ids[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, layout.Placement{ID: id, Row: spec.Row, Col: spec.Col})
	}
	return out
}

// setupLogging writes to the configured log file only; stderr belongs
// to the terminal UI while the program runs.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose || cfg.General.LogLevel == "debug" {
		level = slog.LevelDebug
	}

	if cfg.General.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
