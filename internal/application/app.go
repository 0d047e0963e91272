package application

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/pep299/portfolio-pulse/internal/config"
	"github.com/pep299/portfolio-pulse/internal/repository"
	"github.com/pep299/portfolio-pulse/internal/service"
	"github.com/pep299/portfolio-pulse/internal/transport/handler"
)

// Application wires all dependencies together.
type Application struct {
	Config    *config.Config
	Portfolio *service.Portfolio
	Digest    *service.Digest
	Scheduler *service.Scheduler

	SavePortfolioHandler   http.Handler
	GetPortfolioHandler    http.Handler
	GenerateDigestHandler  http.Handler
	ListDigestsHandler     http.Handler
	EnableScheduleHandler  http.Handler
	DisableScheduleHandler http.Handler
	GetScheduleHandler     http.Handler

	cleanup func() error
}

// New creates an application with the Cloud Storage store.
func New(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := repository.NewCloudStorageStore(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	return build(cfg, store), nil
}

// NewWithStore creates an application over a caller-supplied store. Used by
// the CLI and tests to run against the in-memory store.
func NewWithStore(cfg *config.Config, store repository.Store) *Application {
	return build(cfg, store)
}

func build(cfg *config.Config, store repository.Store) *Application {
	vertesia := repository.NewVertesiaClient(repository.VertesiaOptions{
		BaseURL:          cfg.VertesiaBaseURL,
		APIKey:           cfg.VertesiaAPIKey,
		EnvironmentID:    cfg.EnvironmentID,
		Model:            cfg.Model,
		InteractionName:  cfg.InteractionName,
		LookbackDays:     cfg.LookbackDays,
		PriorityExposure: cfg.PriorityExposure,
	}, repository.NewPDFCPUExtractor())

	var notifier repository.Notifier = repository.NoopNotifier{}
	if cfg.SlackBotToken != "" {
		notifier = repository.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannel)
	}

	portfolioService := service.NewPortfolio(store)
	digestService := service.NewDigest(vertesia, vertesia, store, notifier, portfolioService, service.DigestOptions{
		PollInterval:     cfg.PollInterval,
		PollAttempts:     cfg.PollAttempts,
		MinContentLength: cfg.MinContentLength,
	})
	scheduler := service.NewScheduler(store, service.SchedulerOptions{
		Hours:    cfg.ScheduleHours,
		Weekdays: cfg.ScheduleWeekdays,
	}, func(ctx context.Context) {
		if _, err := digestService.Generate(ctx); err != nil {
			// Scheduled failures wait for the next slot; history keeps
			// the last good digest.
			log.Printf("Scheduled generation failed: %v", err)
		}
	})

	return &Application{
		Config:    cfg,
		Portfolio: portfolioService,
		Digest:    digestService,
		Scheduler: scheduler,

		SavePortfolioHandler:   handler.NewSavePortfolio(portfolioService),
		GetPortfolioHandler:    handler.NewGetPortfolio(portfolioService),
		GenerateDigestHandler:  handler.NewGenerateDigest(digestService),
		ListDigestsHandler:     handler.NewListDigests(digestService),
		EnableScheduleHandler:  handler.NewEnableSchedule(scheduler),
		DisableScheduleHandler: handler.NewDisableSchedule(scheduler),
		GetScheduleHandler:     handler.NewGetSchedule(scheduler),

		cleanup: store.Close,
	}
}

// Close cleans up application resources
func (a *Application) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
