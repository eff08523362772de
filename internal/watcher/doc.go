// Package watcher runs the classifier continuously against live Kubernetes
// Warning events, producing IssueNotification objects for the dispatcher.
//
// # Contract
//
// The Watcher:
//  1. Watches all Events (core/v1) cluster-wide where type=Warning
//  2. For each event, extracts the involvedObject (namespace, name, kind)
//  3. Classifies the event message, attributing it to the involved object
//  4. Emits IssueNotification to an output channel when issues were produced
//
// Suppressed (benign) events produce no notification. Fallback issues are
// emitted like any other — an unrecognized Warning event is still worth a
// low-severity record.
//
// # Rate Limiting
//
// Process at most 100 events/second by default (token bucket). Drop excess
// events with a metric.
//
// # Deduplication
//
// Track (eventUID, owner) pairs. Suppress duplicates within 5 minutes.
//
// # Constructor
//
//	func New(engine *classifier.Engine, client kubernetes.Interface, logger *zap.Logger) *Watcher
//	func (w *Watcher) Start(ctx context.Context) error  // blocking
//	func (w *Watcher) Notifications() <-chan IssueNotification
package watcher
