package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/config"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/notifier"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/watcher"
)

var watchWebhookURL string

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously classify Warning events and forward issues",
		Long: `Watch cluster-wide Warning events, classify each one, and forward the
resulting issues to the reporting platform webhook.

Configuration comes from RW_* environment variables (webhook URL and token,
severity threshold, rate limits, metrics address); --webhook-url overrides
the environment.`,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchWebhookURL, "webhook-url", "", "Reporting platform webhook URL (overrides RW_WEBHOOK_URL)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if watchWebhookURL != "" {
		cfg.WebhookURL = watchWebhookURL
	}

	// Setup logger
	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := logConfig.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting event triage watcher",
		zap.String("version", version),
		zap.Int("severity_threshold", cfg.SeverityThreshold),
		zap.Duration("dedupe_window", cfg.DedupeWindow),
		zap.Bool("webhook_configured", cfg.WebhookURL != ""),
	)

	client, err := getClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the issue pipeline: watcher → dispatcher → senders.
	w := watcher.NewWithOptions(classifier.New(), client, logger, watcher.Options{
		RateLimit:    cfg.EventRateLimit,
		RateBurst:    cfg.EventRateBurst,
		DedupeWindow: cfg.DedupeWindow,
	})

	dispatcherOpts := notifier.DefaultDispatcherOptions()
	dispatcherOpts.RateLimitPerMinute = cfg.DispatchRateLimitPerMinute

	var webhookSender *notifier.WebhookSender
	if cfg.WebhookURL != "" {
		webhookSender, err = notifier.NewWebhookSender(logger, notifier.WebhookSenderConfig{
			URL:                cfg.WebhookURL,
			TimeoutSeconds:     cfg.WebhookTimeoutSeconds,
			InsecureSkipVerify: cfg.WebhookInsecureSkipVerify,
			SeverityThreshold:  cfg.SeverityThreshold,
			AuthToken:          cfg.WebhookAuthToken,
		})
		if err != nil {
			return fmt.Errorf("failed to create webhook sender: %w", err)
		}
		dispatcherOpts.Senders = append(dispatcherOpts.Senders, webhookSender)
		logger.Info("Webhook sender configured", zap.String("url", notifier.RedactURL(cfg.WebhookURL)))
	} else {
		logger.Warn("No webhook URL configured, issues are logged only")
	}

	dispatcher := notifier.NewDispatcher(logger, dispatcherOpts)
	dispatcher.Start(ctx)

	// Metrics and health endpoints
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
	logger.Info("Metrics server listening", zap.String("address", cfg.MetricsAddr))

	// Consume notifications until the watcher closes the channel.
	go func() {
		for notification := range w.Notifications() {
			if err := dispatcher.Dispatch(ctx, notification); err != nil {
				logger.Error("Failed to dispatch issues", zap.Error(err))
			}
		}
	}()

	// Blocks until the context is cancelled.
	if err := w.Start(ctx); err != nil {
		logger.Error("Watcher exited with error", zap.Error(err))
	}

	// Shutdown: stop the metrics server, then drain the webhook queue.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", zap.Error(err))
	}
	if webhookSender != nil {
		webhookSender.Close()
	}

	logger.Info("Event triage watcher stopped")
	return nil
}
