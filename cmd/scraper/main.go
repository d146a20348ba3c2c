// cmd/scraper/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"showscraper/internal/allowlist"
	"showscraper/internal/config"
	"showscraper/internal/db"
	"showscraper/internal/db/migrations"
	"showscraper/internal/ingest"
	"showscraper/internal/repository"
	"showscraper/internal/routes"
	"showscraper/internal/scraper"
	"showscraper/internal/services"
)

func main() {
	once := flag.Bool("once", false, "Run a single scrape and exit")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		logrus.Fatalf("Failed to load sources config: %v", err)
	}

	// Create database if it doesn't exist
	if err := db.CreateDatabaseIfNotExists(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("Failed to ensure database exists: %v", err)
	}

	// Initialize database
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := migrations.RunMigrations(database.DB); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	showRepo := repository.NewShowRepository(database.DB)
	bandRepo := repository.NewBandRepository(database.DB)

	// Seed the band allowlist before anything is filtered against it.
	bands, err := allowlist.Load(cfg.BandsFile)
	if err != nil {
		logrus.Fatalf("Failed to load band allowlist: %v", err)
	}
	ctx := context.Background()
	if err := bandRepo.UpsertBands(ctx, bands); err != nil {
		logrus.Fatalf("Failed to seed band allowlist: %v", err)
	}
	logrus.WithField("bands", len(bands)).Info("seeded allowlist")

	runner := &ingest.Runner{
		Sources: buildSources(cfg, sources),
		Shows:   showRepo,
		Bands:   bandRepo,
	}
	if cfg.SMTPHost != "" && cfg.DigestTo != "" {
		runner.Mailer = &services.SMTPSender{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}
		runner.DigestTo = cfg.DigestTo
	}

	if *once {
		if _, err := runner.Run(ctx); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		return
	}

	// First run right away, then on the cron schedule.
	if _, err := runner.Run(ctx); err != nil {
		logrus.Errorf("Initial run failed: %v", err)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ScrapeCron, func() {
		if _, err := runner.Run(context.Background()); err != nil {
			logrus.Errorf("Scheduled run failed: %v", err)
		}
	}); err != nil {
		logrus.Fatalf("Invalid SCRAPE_CRON %q: %v", cfg.ScrapeCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.SetupRoutes(database.DB, runner),
	}

	// Graceful shutdown
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	// Give server 5 seconds to finish current requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exiting")
}

// buildSources assembles the enabled venue adapters, wiring in the raw
// payload archiver when a bucket is configured.
func buildSources(cfg *config.Config, sources *config.Sources) []scraper.Source {
	var archiver scraper.Archiver
	if s3cfg, err := config.NewS3Config(); err != nil {
		logrus.Errorf("Failed to configure archive bucket, archiving disabled: %v", err)
	} else if s3cfg.Enabled() {
		archiver = services.NewS3Archiver(s3cfg)
		logrus.WithField("bucket", s3cfg.Bucket).Info("raw payload archiving enabled")
	}

	var out []scraper.Source
	if sources.LostWell.Enabled {
		s := scraper.NewLostWell(sources.LostWell.URL, sources.LostWell.Instance)
		s.SetArchiver(archiver)
		out = append(out, s)
	}
	if sources.Eventbrite.Enabled {
		s := scraper.NewComeAndTakeItLive(sources.Eventbrite.URL, sources.Eventbrite.VenueID, cfg.EventbriteToken)
		s.SetArchiver(archiver)
		out = append(out, s)
	}
	if sources.Mohawk.Enabled {
		s := scraper.NewMohawk(sources.Mohawk.URL)
		s.SetArchiver(archiver)
		out = append(out, s)
	}
	return out
}
