package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gamevault/gamevault/internal/api"
	"github.com/gamevault/gamevault/internal/collection"
	"github.com/gamevault/gamevault/internal/config"
	"github.com/gamevault/gamevault/internal/search"
	"github.com/gamevault/gamevault/internal/store"
	"github.com/gamevault/gamevault/internal/tui"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.BoolVar(showVersion, "v", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gamevault %s\n", version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = config.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting gamevault", "version", version, "server", cfg.Server.URL)

	notifier := &tui.ProgramNotifier{}

	client := api.NewClient(cfg.Server.URL, cfg.Server.RequestTimeout(), notifier, logger)

	archiveStore, err := store.NewArchiveStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer archiveStore.Close()

	ctrl := collection.NewController(collection.Repositories{
		Consoles: client,
		Games:    client,
		Status:   client,
		Stats:    client,
		Assets:   client,
	}, archiveStore, notifier, logger, cfg.UI.PageSize)
	ctrl.UseSearcher(search.NewService(client, logger))

	model := tui.NewModel(ctrl, client, tui.Options{
		RecentLimit:    cfg.UI.RecentLimit,
		HeaderRotation: time.Duration(cfg.UI.HeaderRotation) * time.Second,
	}, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	notifier.Attach(p.Send)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
