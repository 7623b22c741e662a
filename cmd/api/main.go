package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repo-event-relay/config"
	_ "repo-event-relay/docs" // Swagger docs
	"repo-event-relay/internal/agent/orchestrator"
	"repo-event-relay/internal/agent/tools"
	"repo-event-relay/internal/console"
	"repo-event-relay/internal/event/repository"
	eventFile "repo-event-relay/internal/event/repository/file"
	"repo-event-relay/internal/httpserver"
	"repo-event-relay/internal/notify"
	notifyHTTP "repo-event-relay/internal/notify/delivery/http"
	notifyUC "repo-event-relay/internal/notify/usecase"
	"repo-event-relay/pkg/datemath"
	"repo-event-relay/pkg/github"
	"repo-event-relay/pkg/llmprovider"
	"repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
	"repo-event-relay/pkg/slack"
)

// @title       Repo Event Relay API
// @description GitHub webhook to Slack relay with an LLM-driven tool dispatcher.
// @version     1
// @host        localhost:8001
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Repo Event Relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	m := metrics.New()

	// 3. Event store
	store, err := eventFile.New(repository.FileOptions{
		Path:        cfg.EventStore.Path,
		Capacity:    cfg.EventStore.Capacity,
		LockTimeout: config.ParseDuration(cfg.EventStore.LockTimeout, 5*time.Second),
	}, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open event store: ", err)
		return
	}

	clock, err := datemath.NewConverter(cfg.Pipeline.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Pipeline.Timezone, err)
		clock = datemath.MustUTC()
	}

	// 4. External clients
	githubClient, err := github.NewClient(ctx, github.Config{
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.BaseURL,
		Timeout: config.ParseDuration(cfg.GitHub.Timeout, github.DefaultTimeout),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize GitHub client: ", err)
		return
	}
	if !githubClient.Configured() {
		logger.Warn(ctx, "GITHUB_PAT is not set, pull request tools will report an error")
	}

	slackClient := slack.NewClient(cfg.Slack.WebhookURL, config.ParseDuration(cfg.Slack.Timeout, 10*time.Second))
	if !slackClient.Configured() {
		logger.Warn(ctx, "SLACK_WEBHOOK_URL is not set, notifications will report an error")
	}

	// 5. Tools and dispatcher
	registry, err := tools.NewRegistry(tools.Deps{
		Events: store,
		GitHub: githubClient,
		Slack:  slackClient,
		Clock:  clock,
		Logger: logger,
	})
	if err != nil {
		logger.Error(ctx, "Failed to register tools: ", err)
		return
	}

	var planner orchestrator.Planner
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Warnf(ctx, "LLM planner disabled: %v", err)
	} else {
		manager := llmprovider.NewManager(providers, &llmprovider.Config{
			FallbackEnabled: cfg.LLM.FallbackEnabled,
			RetryAttempts:   cfg.LLM.RetryAttempts,
			RetryDelay:      config.ParseDuration(cfg.LLM.RetryDelay, time.Second),
			MaxTotalTimeout: config.ParseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
		}, logger)
		planner = orchestrator.NewLLMPlanner(manager, registry, logger, cfg.Agent.Temperature)
		logger.Infof(ctx, "✅ LLM planner initialized with %d provider(s)", len(providers))
	}

	dispatcher := orchestrator.New(planner, registry, logger, m, orchestrator.Options{
		MaxRounds: cfg.Agent.MaxRounds,
	})

	// 6. Notification pipeline
	uc, err := notifyUC.New(dispatcher, clock, m, logger, notify.Options{
		AllowedPRActions: cfg.Pipeline.AllowedPRActions,
		UsePlanner:       cfg.Pipeline.UsePlanner && planner != nil,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize notify usecase: ", err)
		return
	}
	if cfg.Pipeline.SeedDedupFromStore {
		n, seedErr := uc.SeedFromStore(ctx, store)
		if seedErr != nil {
			logger.Warnf(ctx, "Could not seed handled pull requests: %v", seedErr)
		} else {
			logger.Infof(ctx, "Seeded %d handled pull request(s) from the event store", n)
		}
	}
	if cfg.Slack.SigningSecret == "" {
		logger.Warn(ctx, "SLACK_SIGNING_SECRET is not set, interactive callbacks are not verified")
	}
	notifyHandler := notifyHTTP.New(logger, uc, cfg.Slack.SigningSecret)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   cfg.Environment.Name,
		Metrics:       m,
		NotifyHandler: notifyHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Console
	if cfg.Console.Enabled {
		go func() {
			if err := console.New(dispatcher, logger).Run(ctx, os.Stdin, os.Stdout); err != nil {
				logger.Warnf(ctx, "Console stopped: %v", err)
			}
		}()
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
