package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pep299/portfolio-pulse/internal/application"
	"github.com/pep299/portfolio-pulse/internal/transport/server"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Portfolio Pulse Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  VERTESIA_API_KEY            Vertesia API key (required)\n")
		fmt.Printf("  VERTESIA_ENVIRONMENT_ID     Vertesia environment id (required)\n")
		fmt.Printf("  API_AUTH_TOKEN              Bearer token for the API (empty disables auth)\n")
		fmt.Printf("  SLACK_BOT_TOKEN             Slack bot token (empty disables notifications)\n")
		fmt.Printf("  STORAGE_BUCKET              Cloud Storage bucket (default: portfolio-pulse-store)\n")
		fmt.Printf("  PORT                        Server port (default: 8080)\n")
		fmt.Printf("  HOST                        Server host (default: 0.0.0.0)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Portfolio Pulse Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := application.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	if err := app.Scheduler.Load(ctx); err != nil {
		log.Fatalf("Failed to load schedule state: %v", err)
	}

	router := server.NewRouter(app)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", app.Config.Host, app.Config.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The scheduler poll runs every minute regardless of pipeline state; the
	// generation pipeline never blocks it.
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		app.Scheduler.Poll(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule poll: %v", err)
	}
	if _, err := c.AddFunc("@every 5m", func() {
		if app.Scheduler.Enabled() {
			status := app.Scheduler.Status()
			log.Printf("Next scheduled run %s (in %s)", status.NextRun.Format(time.RFC3339), status.Countdown)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule countdown refresh: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s:%s", app.Config.Host, app.Config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down server...")

	cancel()
	c.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
