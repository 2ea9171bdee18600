package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/namepair/cliparse"
	"github.com/danielhkuo/namepair/db"
	"github.com/danielhkuo/namepair/game"
	"github.com/danielhkuo/namepair/jobs"
	"github.com/danielhkuo/namepair/middleware"
	"github.com/danielhkuo/namepair/names"
	"github.com/danielhkuo/namepair/notify"
	"github.com/danielhkuo/namepair/router"
)

const (
	webhookTimeout = 5 * time.Second
	// deliveryTimeout bounds one participant's notification across all notifiers
	deliveryTimeout = 2 * webhookTimeout
)

func main() {
	var err error

	// A missing .env is fine; real deployments use the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	svc := game.NewService(dbConn)

	if err := seedCandidates(ctx, svc, cfg); err != nil {
		slog.Error("candidate seeding failed", "source", cfg.NamesSource, "error", err)
		os.Exit(1)
	}

	sched, err := jobs.StartStatsReporter(ctx, svc, cfg.StatsInterval)
	if err != nil {
		slog.Error("stats reporter failed to start", "error", err)
		os.Exit(1)
	}
	defer sched.Shutdown()

	// Notifications go to open websockets and to webhook addresses
	hub := notify.NewHub()
	notifier := notify.NewAsync(notify.Multi{hub, notify.NewWebhook(webhookTimeout)}, deliveryTimeout)

	// Create router
	mux := router.NewRouter(svc, cfg, hub, notifier)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let in-flight notifications finish
	notifier.Wait()
}

// seedCandidates loads the names list into an empty catalogue. A populated
// catalogue is left alone and the source is not read.
func seedCandidates(ctx context.Context, svc *game.Service, cfg cliparse.Config) error {
	count, err := svc.CandidateCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Candidate catalogue ready", "candidates", humanize.Comma(int64(count)))
		return nil
	}

	src, err := names.Open(ctx, cfg.NamesSource, cfg.S3)
	if err != nil {
		return err
	}
	list, err := names.Read(ctx, src)
	if err != nil {
		return err
	}

	added, err := svc.SeedCandidates(ctx, list)
	if err != nil {
		return err
	}
	slog.Info("Candidate catalogue seeded",
		"source", src.String(),
		"lines", humanize.Comma(int64(len(list))),
		"added", humanize.Comma(int64(added)),
	)
	return nil
}
