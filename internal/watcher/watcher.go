package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/util"
)

const (
	defaultRateLimit    = 100 // events/second
	defaultRateBurst    = 200
	defaultDedupeWindow = 5 * time.Minute
	notificationBuffer  = 1000

	watchRetryDelay = 5 * time.Second
)

// IssueNotification carries the classifier output for one Warning event.
type IssueNotification struct {
	Issues    []classifier.Issue
	Namespace string
	OwnerKind string
	OwnerName string
	EventUID  string
	Reason    string
}

// dedupeKey uniquely identifies an event-owner pair.
type dedupeKey struct {
	eventUID string
	owner    string
}

// Options configures the Watcher.
type Options struct {
	RateLimit    int           // events/second, default 100
	RateBurst    int           // token bucket burst, default 200
	DedupeWindow time.Duration // default 5m
}

// DefaultOptions returns the default Watcher configuration.
func DefaultOptions() Options {
	return Options{
		RateLimit:    defaultRateLimit,
		RateBurst:    defaultRateBurst,
		DedupeWindow: defaultDedupeWindow,
	}
}

// Watcher classifies Warning events as they arrive.
type Watcher struct {
	logger        *zap.Logger
	client        kubernetes.Interface
	engine        *classifier.Engine
	notifications chan IssueNotification
	limiter       *rate.Limiter
	dedupeWindow  time.Duration

	mu   sync.Mutex
	seen map[dedupeKey]time.Time
}

// New creates a Watcher with default options.
func New(engine *classifier.Engine, client kubernetes.Interface, logger *zap.Logger) *Watcher {
	return NewWithOptions(engine, client, logger, DefaultOptions())
}

// NewWithOptions creates a Watcher. Zero option fields fall back to defaults.
func NewWithOptions(engine *classifier.Engine, client kubernetes.Interface, logger *zap.Logger, opts Options) *Watcher {
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = defaultRateBurst
	}
	if opts.DedupeWindow <= 0 {
		opts.DedupeWindow = defaultDedupeWindow
	}
	return &Watcher{
		logger:        logger.Named("watcher"),
		client:        client,
		engine:        engine,
		notifications: make(chan IssueNotification, notificationBuffer),
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		dedupeWindow:  opts.DedupeWindow,
		seen:          make(map[dedupeKey]time.Time),
	}
}

// Notifications returns the channel of issue notifications.
func (w *Watcher) Notifications() <-chan IssueNotification {
	return w.notifications
}

// Start begins watching events and classifying them. Blocks until the context
// is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("Starting event watcher")

	go w.cleanupSeen(ctx)

	for {
		if err := w.watchEvents(ctx); err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Event watcher stopped")
				close(w.notifications)
				return nil
			}
			w.logger.Error("Event watch failed, retrying", zap.Error(err))
			time.Sleep(watchRetryDelay)
		}
	}
}

// watchEvents creates a watch on Warning events and processes them.
func (w *Watcher) watchEvents(ctx context.Context) error {
	watcher, err := w.client.CoreV1().Events("").Watch(ctx, metav1.ListOptions{
		FieldSelector: "type=Warning",
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.ResultChan():
			if !ok {
				return nil // watch closed, will be retried
			}
			if event.Type == watch.Added || event.Type == watch.Modified {
				w.handleEvent(ctx, event.Object.(*corev1.Event))
			}
		}
	}
}

// handleEvent classifies a single Warning event and emits a notification.
func (w *Watcher) handleEvent(ctx context.Context, event *corev1.Event) {
	if !w.limiter.Allow() {
		eventsDropped.WithLabelValues("rate_limited").Inc()
		w.logger.Debug("Event rate limited", zap.String("event", event.Name))
		return
	}

	involved := event.InvolvedObject
	if involved.Namespace == "" {
		return // cluster-scoped objects have no workload owner
	}

	key := dedupeKey{
		eventUID: string(event.UID),
		owner:    fmt.Sprintf("%s/%s/%s", involved.Namespace, involved.Kind, involved.Name),
	}
	if !w.tryMarkSeen(key) {
		eventsDropped.WithLabelValues("duplicate").Inc()
		return
	}

	issues := w.engine.Classify(event.Message, involved.Kind, involved.Name)
	if len(issues) == 0 {
		eventsSuppressed.Inc()
		return
	}

	for _, issue := range issues {
		issuesEmitted.WithLabelValues(fmt.Sprintf("%d", issue.Severity)).Inc()
	}

	notification := IssueNotification{
		Issues:    issues,
		Namespace: involved.Namespace,
		OwnerKind: involved.Kind,
		OwnerName: involved.Name,
		EventUID:  string(event.UID),
		Reason:    event.Reason,
	}

	select {
	case w.notifications <- notification:
	case <-ctx.Done():
	default:
		// Key stays marked seen — the notification is intentionally dropped
		// rather than risking duplicate delivery on requeue.
		eventsDropped.WithLabelValues("buffer_full").Inc()
		w.logger.Warn("Notification channel full, dropping event",
			zap.String("event", event.Name),
			zap.String("message", util.TruncateString(event.Message, 120)),
		)
	}
}

// tryMarkSeen atomically checks if this event-owner pair was recently
// processed and, if not, marks it as seen. Returns true for new pairs.
func (w *Watcher) tryMarkSeen(key dedupeKey) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seenAt, exists := w.seen[key]; exists {
		if time.Since(seenAt) < w.dedupeWindow {
			return false
		}
	}
	w.seen[key] = time.Now()
	return true
}

// cleanupSeen periodically removes old entries from the dedupe cache.
func (w *Watcher) cleanupSeen(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			cutoff := time.Now().Add(-w.dedupeWindow)
			for key, seenAt := range w.seen {
				if seenAt.Before(cutoff) {
					delete(w.seen, key)
				}
			}
			w.mu.Unlock()
		}
	}
}
