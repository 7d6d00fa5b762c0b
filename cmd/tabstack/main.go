package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tabstack/internal/config"
	"tabstack/internal/player"
	"tabstack/internal/scroller"
	"tabstack/internal/stack"
	"tabstack/internal/telemetry"
	"tabstack/internal/ui"
)

// options holds the parsed CLI flags. Flags that were set override the
// config file.
type options struct {
	configPath  string
	tabs        int
	policy      string
	orientation string
	locale      string
	debugAddr   string
	verbose     bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "tabstack.toml", "path to the TOML config file")
	flag.IntVar(&opts.tabs, "tabs", 0, "number of tabs to open at start")
	flag.StringVar(&opts.policy, "policy", "", "layout policy: overlapping or nonoverlapping")
	flag.StringVar(&opts.orientation, "orientation", "", "portrait or landscape")
	flag.StringVar(&opts.locale, "locale", "", "BCP 47 locale that selects the layout direction")
	flag.StringVar(&opts.debugAddr, "debug-addr", "", "serve recent transitions as JSON on this address")
	flag.BoolVar(&opts.verbose, "verbose", false, "log at debug level")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tabstack [flags]\n\n")
		fmt.Fprintf(os.Stderr, "tabstack is an interactive tab switcher that lays out and animates\n")
		fmt.Fprintf(os.Stderr, "a stack of tabs in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tabs":
			cfg.Tabs = opts.tabs
		case "policy":
			cfg.Policy = opts.policy
		case "orientation":
			cfg.Orientation = opts.orientation
		case "locale":
			cfg.Locale = opts.locale
		case "debug-addr":
			cfg.DebugAddr = opts.debugAddr
		}
	})
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("config %s: %w", opts.configPath, err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	rec := telemetry.NewRecorder(0)
	provider, err := telemetry.NewProvider(ctx, rec)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "err", err)
		}
	}()

	if cfg.DebugAddr != "" {
		srv := telemetry.NewServer(rec, cfg.DebugAddr, logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("debug server: %w", err)
		}
		defer srv.Stop(context.Background())
		logger.Info("debug server listening", "addr", srv.Addr())
	}

	ctrl := stack.New(scroller.New(),
		stack.WithPolicy(stack.NewPolicy(resolved.Policy)),
		stack.WithOrientation(resolved.Orientation),
		stack.WithLayoutDirection(resolved.Direction),
		stack.WithViewport(resolved.Viewport),
		stack.WithLogger(logger),
		stack.WithTracer(provider.Tracer()),
	)
	vp := resolved.Viewport
	for id := 1; id <= resolved.Tabs; id++ {
		ctrl.AddTab(id, &stack.Surface{Width: vp.Width, OriginalContentHeight: vp.Height - vp.ChromeHeight})
	}
	logger.Info("starting",
		"policy", resolved.Policy,
		"orientation", resolved.Orientation,
		"direction", resolved.Direction,
		"tabs", resolved.Tabs,
		"exporting", provider.Exporting(),
	)

	model := ui.NewAppModel(ui.Options{
		Controller: ctrl,
		Player:     player.New(logger),
		Recorder:   rec,
		Logger:     logger,
	}).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "tabstack: %v\n", err)
		os.Exit(1)
	}
}
