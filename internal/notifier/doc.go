// Package notifier delivers classified issues to the external reporting
// platform.
//
// # Contract
//
// The Dispatcher consumes watcher.IssueNotification values, applies a
// per-namespace rate limit, and fans each issue out to every configured
// Sender whose severity threshold admits it. Delivery failures are logged,
// never propagated — a slow or broken sink must not stall classification.
//
// The WebhookSender posts Envelope JSON payloads with a bounded queue and a
// small worker pool; transient failures (5xx, connection errors) are retried
// with linear backoff.
package notifier
