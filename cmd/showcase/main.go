package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jask/showcase/internal/auth"
	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/directory"
	"github.com/jask/showcase/internal/logging"
	"github.com/jask/showcase/internal/preview"
	"github.com/jask/showcase/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("showcase needs an interactive terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closer.Close()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database.Migrations); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	catalog, err := directory.Load(cfg.Directory.Path)
	if err != nil {
		log.Fatalf("directory: %v", err)
	}

	logger.Info("starting",
		"db", cfg.Database.Path,
		"preview_mode", cfg.Preview.Mode,
		"websites", len(catalog.Websites()),
		"creators", len(catalog.Creators()),
	)

	app := tui.New(ctx, cfg, tui.Deps{
		Catalog:   catalog,
		Session:   auth.NewProvider(db, logger),
		Bookmarks: tui.NewBookmarkStore(repository.NewBookmarkRepo(db)),
		Preview:   preview.New(cfg.Preview, catalog),
		Log:       logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error: %v\n", err)
	}
}
