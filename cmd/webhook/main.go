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
	"repo-event-relay/internal/event/repository"
	eventFile "repo-event-relay/internal/event/repository/file"
	"repo-event-relay/internal/httpserver"
	"repo-event-relay/internal/webhook"
	"repo-event-relay/pkg/datemath"
	"repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
)

// main runs the GitHub webhook listener. It normalizes and stores every delivery,
// then forwards it to the notification pipeline served by cmd/api.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting GitHub webhook listener...")
	if !cfg.Webhook.Enabled {
		logger.Warn(ctx, "webhook.enabled is false, nothing to do")
		return
	}

	m := metrics.New()

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

	// A missing notify URL only disables forwarding; events are still stored.
	var notifier webhook.Notifier
	forwarder, err := webhook.NewForwarder(cfg.Notify.URL, config.ParseDuration(cfg.Notify.Timeout, 10*time.Second), logger)
	if err != nil {
		logger.Warnf(ctx, "Forwarding disabled: %v", err)
	} else {
		notifier = forwarder
		logger.Infof(ctx, "Forwarding events to %s", cfg.Notify.URL)
	}

	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "WEBHOOK_SECRET is not set, signatures are not verified")
	}
	handler := webhook.NewHandler(
		webhook.NewNormalizer(clock),
		store,
		notifier,
		webhook.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		},
		m,
		logger,
	)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.WebhookServer.Port,
		Mode:           cfg.WebhookServer.Mode,
		Environment:    cfg.Environment.Name,
		Service:        "repo-event-relay-webhook",
		Metrics:        m,
		TrustedProxies: cfg.Webhook.TrustedProxies,
		WebhookHandler: handler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if cfg.WebhookServer.NgrokAPI != "" {
		go func() {
			url, err := publicURL(ctx, cfg.WebhookServer.NgrokAPI)
			if err != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
				return
			}
			logger.Infof(ctx, "✅ Configure the GitHub webhook at %s/webhook/github", url)
		}()
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Webhook listener stopped gracefully")
}
