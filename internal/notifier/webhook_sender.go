package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

const (
	defaultWebhookTimeout    = 10 * time.Second
	defaultWebhookWorkers    = 3
	defaultWebhookBufferSize = 100
	maxRetries               = 2
	userAgent                = "rw-triage/v1"
)

// Envelope is the JSON payload POSTed to the reporting platform.
type Envelope struct {
	// Type identifies the notification kind.
	Type string `json:"type"`
	// SchemaVersion allows consumers to detect breaking changes.
	SchemaVersion string `json:"schemaVersion"`
	// Timestamp is the RFC3339 time the issue was sent.
	Timestamp string `json:"timestamp"`
	// Data contains the issue and its workload attribution.
	Data IssuePayload `json:"data"`
}

// webhookWork is an internal message sent to the worker pool.
type webhookWork struct {
	ctx      context.Context
	envelope Envelope
}

// WebhookSender implements the Sender interface for generic HTTP POST webhooks.
type WebhookSender struct {
	httpClient        *http.Client
	logger            *zap.Logger
	url               string
	authToken         string
	severityThreshold int
	sendCh            chan webhookWork
	wg                sync.WaitGroup
}

// WebhookSenderConfig holds the configuration for creating a WebhookSender.
type WebhookSenderConfig struct {
	URL                string
	TimeoutSeconds     int
	InsecureSkipVerify bool
	// SeverityThreshold is the least-urgent severity still delivered
	// (1 = only page-worthy, 4 = everything including informational).
	SeverityThreshold int
	// AuthToken is a pre-resolved bearer token. Stored at construction time —
	// rotation requires a restart.
	AuthToken string
}

// NewWebhookSender creates a WebhookSender. Returns an error if the URL is invalid.
func NewWebhookSender(logger *zap.Logger, cfg WebhookSenderConfig) (*WebhookSender, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("webhook URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("webhook URL must include a host")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = defaultWebhookTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // user-configured
		logger.Warn("Webhook TLS certificate verification is disabled — this is insecure",
			zap.String("url", RedactURL(cfg.URL)))
	}

	threshold := cfg.SeverityThreshold
	if threshold < classifier.SeverityCritical || threshold > classifier.SeverityInformational {
		threshold = classifier.SeverityMinor
	}

	return &WebhookSender{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger:            logger.Named("webhook-sender"),
		url:               cfg.URL,
		authToken:         cfg.AuthToken,
		severityThreshold: threshold,
		sendCh:            make(chan webhookWork, defaultWebhookBufferSize),
	}, nil
}

// Name implements Sender.
func (ws *WebhookSender) Name() string { return "webhook" }

// ShouldSend implements Sender. Severity 1 is most critical; an issue passes
// when it is at least as urgent as the threshold.
func (ws *WebhookSender) ShouldSend(severity int) bool {
	return severity <= ws.severityThreshold
}

// Start implements Sender. Launches background workers to drain the send channel.
func (ws *WebhookSender) Start(ctx context.Context) {
	for range defaultWebhookWorkers {
		ws.wg.Add(1)
		go ws.worker(ctx)
	}
	ws.logger.Info("Webhook sender started",
		zap.String("url", RedactURL(ws.url)),
		zap.Int("workers", defaultWebhookWorkers),
		zap.Int("severity_threshold", ws.severityThreshold),
	)
}

// Close waits for all workers to finish draining queued issues.
// Call after the context passed to Start is cancelled.
func (ws *WebhookSender) Close() {
	ws.wg.Wait()
}

// Send implements Sender. Enqueues the issue for async delivery.
func (ws *WebhookSender) Send(ctx context.Context, payload IssuePayload) error {
	envelope := Envelope{
		Type:          "triage.issue",
		SchemaVersion: "1",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Data:          payload,
	}

	select {
	case ws.sendCh <- webhookWork{ctx: ctx, envelope: envelope}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		webhookSendTotal.WithLabelValues("dropped").Inc()
		ws.logger.Warn("Webhook send buffer full, dropping issue",
			zap.String("owner", payload.OwnerName))
		return fmt.Errorf("webhook send buffer full")
	}
}

// worker drains the send channel and delivers issues. On context cancellation
// it drains remaining buffered items before exiting.
func (ws *WebhookSender) worker(ctx context.Context) {
	defer ws.wg.Done()
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case work := <-ws.sendCh:
					drainCtx, cancel := context.WithTimeout(context.Background(), ws.httpClient.Timeout)
					if err := ws.doSend(drainCtx, work.envelope); err != nil {
						ws.logger.Warn("Webhook send failed during shutdown drain",
							zap.String("url", RedactURL(ws.url)),
							zap.Error(err),
						)
					}
					cancel()
				default:
					return
				}
			}
		case work, ok := <-ws.sendCh:
			if !ok {
				return
			}
			if err := ws.doSend(work.ctx, work.envelope); err != nil {
				ws.logger.Error("Webhook send failed",
					zap.String("url", RedactURL(ws.url)),
					zap.Error(err),
				)
			}
		}
	}
}

// doSend performs the HTTP POST with retry logic.
func (ws *WebhookSender) doSend(ctx context.Context, envelope Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		webhookSendTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	var lastErr error
	for attempt := range maxRetries + 1 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				webhookSendTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
			default:
			}
			// Linear backoff: 1s, 2s.
			backoff := time.Duration(attempt) * time.Second
			timer := time.NewTimer(backoff)
			select {
			case <-timer.C:
				timer.Stop()
			case <-ctx.Done():
				timer.Stop()
				webhookSendTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			}
			webhookSendTotal.WithLabelValues("retry").Inc()
		}

		lastErr = ws.doPost(ctx, body)
		if lastErr == nil {
			return nil
		}

		// Only retry on transient errors (5xx, connection issues).
		if !isRetryable(lastErr) {
			webhookSendTotal.WithLabelValues("error").Inc()
			return lastErr
		}

		ws.logger.Debug("Webhook send transient failure, will retry",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	webhookSendTotal.WithLabelValues("error").Inc()
	return fmt.Errorf("webhook send failed after %d attempts: %w", maxRetries+1, lastErr)
}

// doPost executes a single HTTP POST request.
func (ws *WebhookSender) doPost(ctx context.Context, body []byte) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ws.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if ws.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+ws.authToken)
	}

	resp, err := ws.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		webhookSendDuration.WithLabelValues("error").Observe(duration)
		return &webhookError{err: err, retryable: true}
	}
	defer func() {
		// Drain and close body to reuse connections.
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		webhookSendTotal.WithLabelValues("success").Inc()
		webhookSendDuration.WithLabelValues("success").Observe(duration)
		return nil
	}

	webhookSendDuration.WithLabelValues("error").Observe(duration)
	retryable := resp.StatusCode >= 500
	return &webhookError{
		err:       fmt.Errorf("webhook returned HTTP %d", resp.StatusCode),
		retryable: retryable,
	}
}

// webhookError wraps an error with a retryable flag.
type webhookError struct {
	err       error
	retryable bool
}

func (e *webhookError) Error() string { return e.err.Error() }
func (e *webhookError) Unwrap() error { return e.err }

// isRetryable returns true if the error is a transient failure worth retrying.
func isRetryable(err error) bool {
	var we *webhookError
	if errors.As(err, &we) {
		return we.retryable
	}
	// Unknown errors (connection refused, DNS, etc.) are retryable.
	return true
}

// RedactURL masks credentials in a URL for safe logging.
// It redacts userinfo passwords and query parameter values.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	redacted := u.Redacted()
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			q.Set(key, "REDACTED")
		}
		r, err := url.Parse(redacted)
		if err != nil {
			return redacted
		}
		r.RawQuery = q.Encode()
		return r.String()
	}
	return redacted
}
