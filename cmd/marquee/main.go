package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/launcher"
	"github.com/mmcdole/marquee/internal/listctx"
	"github.com/mmcdole/marquee/internal/logging"
	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI is the command line of marquee
type CLI struct {
	Version    kong.VersionFlag `help:"Show version." short:"V"`
	Config     string           `help:"Path to the config file." type:"path" placeholder:"FILE"`
	NewSession bool             `help:"Start a new browsing session, dropping cached responses." name:"new-session"`
	ClearCache bool             `help:"Delete cached responses and the saved list, then exit." name:"clear-cache"`
	Setup      bool             `help:"Prompt for a TMDB API key and save it."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Browse, search and sort the TMDB movie catalog from the terminal."),
		kong.Vars{"version": "marquee " + Version},
	)

	if err := run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if cli.ClearCache {
		if err := store.RemoveDB(cfg.CacheDir()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	if cli.Setup || !cfg.IsConfigured() {
		return runSetupFlow(cfg, cli.Config, os.Stdin, os.Stdout, logger)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfg.Path(), err)
	}

	if !isTerminal(os.Stdout) {
		return errors.New("marquee needs an interactive terminal")
	}

	db, err := store.Open(cfg.CacheDir(), store.Options{
		SessionTTL: cfg.Cache.SessionTTL,
		NewSession: cli.NewSession,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	client := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout, logger)
	gateway := catalog.NewGateway(client, store.NewMemoryKV(), db.Session(), logger)
	lists := listctx.New(db.State(), logger)
	opener := launcher.New(cfg.Browser.Command, cfg.Browser.Args, logger)

	model := tui.NewModel(gateway, lists, opener, uiOptions(cfg, logger))

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "cache", db.Path())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// uiOptions maps validated configuration onto the TUI's options
func uiOptions(cfg *config.Config, logger *slog.Logger) tui.Options {
	opts := tui.DefaultOptions()
	opts.Debounce = cfg.UI.Debounce
	opts.RelevanceOnSearch = cfg.UI.RelevanceOnSearch
	opts.TrendingCount = cfg.UI.TrendingCount
	opts.ImageBaseURL = cfg.TMDB.ImageBaseURL
	opts.Logger = logger
	if k, err := sorting.ParseKey(cfg.UI.DefaultSort); err == nil {
		opts.DefaultSort = k
	}
	if d, err := sorting.ParseDirection(cfg.UI.DefaultDirection); err == nil {
		opts.DefaultDirection = d
	}
	return opts
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
