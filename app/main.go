package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petropulse/petropulse/app/api"
	"github.com/petropulse/petropulse/app/cfg"
	"github.com/petropulse/petropulse/app/database"
	"github.com/petropulse/petropulse/app/ingest"
	"github.com/petropulse/petropulse/app/scraper"
	"github.com/petropulse/petropulse/app/sources"
	"github.com/petropulse/petropulse/app/tasks"
	"github.com/petropulse/petropulse/app/ui"
)

func main() {
	appCfg, args, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg)

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: petropulse [OPTIONS] <ingest|serve>")
		os.Exit(2)
	}

	switch args[0] {
	case "ingest":
		runIngest(appCfg)
	case "serve":
		runServe(appCfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q, expected 'ingest' or 'serve'\n", args[0])
		os.Exit(2)
	}
}

func setupLogger(appCfg *cfg.Cfg) {
	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// setup wires the shared components: database, migrations, feed list,
// scraper and the ingestion pipeline.
func setup(appCfg *cfg.Cfg) (*database.DB, *ingest.Ingestor, *sources.List, database.ArticleRepository, error) {
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	feeds, err := sources.Load(appCfg.FeedsFile)
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, fmt.Errorf("failed to load feed sources: %w", err)
	}
	slog.Info("Feed sources loaded", "groups", len(feeds.Groups), "feeds", feeds.Count())

	repo := database.NewArticleRepository(db)

	httpClient := &http.Client{}
	timeout := time.Duration(appCfg.FetchTimeout) * time.Second
	feedScraper := scraper.NewScraper(httpClient, appCfg.UserAgent, timeout)

	var extractor *scraper.ContentExtractor
	if appCfg.ExtractContent {
		extractor = scraper.NewContentExtractor(httpClient, appCfg.UserAgent, timeout)
	}

	ingestor := ingest.NewIngestor(feedScraper, extractor, repo)

	return db, ingestor, feeds, repo, nil
}

// runIngest executes a single ingestion pass and prints a summary.
func runIngest(appCfg *cfg.Cfg) {
	db, ingestor, feeds, _, err := setup(appCfg)
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := ingestor.Run(ctx, feeds.URLs(), ingest.Options{
		Days:           appCfg.Days,
		PerFeed:        appCfg.PerFeed,
		ExtractContent: appCfg.ExtractContent,
	})
	if err != nil {
		slog.Error("Ingestion pass failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(ui.RenderSummary(stats, feeds.Count()))
}

// runServe starts the dashboard server with periodic background ingestion.
func runServe(appCfg *cfg.Cfg) {
	slog.Info("Starting PetroPulse server", "version", appCfg.Version)

	db, ingestor, feeds, repo, err := setup(appCfg)
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	scheduler := tasks.NewScheduler(ingestor, feeds.URLs())
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", time.Duration(appCfg.IngestInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(repo)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
