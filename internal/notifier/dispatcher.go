package notifier

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/watcher"
)

// DispatcherOptions configures the Dispatcher behavior.
type DispatcherOptions struct {
	RateLimitPerMinute int      // per-namespace, default 100
	Senders            []Sender // external issue sinks
}

// DefaultDispatcherOptions returns sensible defaults.
func DefaultDispatcherOptions() DispatcherOptions {
	return DispatcherOptions{
		RateLimitPerMinute: 100,
	}
}

// nsRateLimiter tracks rate limits per namespace.
type nsRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	lastAccess map[string]time.Time
	rate       rate.Limit
	burst      int
}

func newNsRateLimiter(perMinute int) *nsRateLimiter {
	return &nsRateLimiter{
		limiters:   make(map[string]*rate.Limiter),
		lastAccess: make(map[string]time.Time),
		rate:       rate.Limit(float64(perMinute) / 60.0),
		burst:      max(1, perMinute/10), // 10% burst, minimum 1
	}
}

func (n *nsRateLimiter) Allow(ns string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	limiter, exists := n.limiters[ns]
	if !exists {
		limiter = rate.NewLimiter(n.rate, n.burst)
		n.limiters[ns] = limiter
	}
	n.lastAccess[ns] = time.Now()
	return limiter.Allow()
}

// Evict removes namespace rate limiters that haven't been accessed within maxAge.
func (n *nsRateLimiter) Evict(maxAge time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	for ns, last := range n.lastAccess {
		if last.Before(cutoff) {
			delete(n.limiters, ns)
			delete(n.lastAccess, ns)
		}
	}
}

// Dispatcher fans classified issues out to external senders.
type Dispatcher struct {
	logger    *zap.Logger
	opts      DispatcherOptions
	nsLimiter *nsRateLimiter
	senders   []Sender
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(logger *zap.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = DefaultDispatcherOptions().RateLimitPerMinute
	}
	return &Dispatcher{
		logger:    logger.Named("dispatcher"),
		opts:      opts,
		nsLimiter: newNsRateLimiter(opts.RateLimitPerMinute),
		senders:   opts.Senders,
	}
}

// Start begins background routines for cleanup and external senders. Non-blocking.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.evictLoop(ctx)
	for _, s := range d.senders {
		s.Start(ctx)
		d.logger.Info("Started external sender", zap.String("sender", s.Name()))
	}
}

// Dispatch forwards every issue in the notification to the configured
// senders. Sender failures are logged but never fail the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, n watcher.IssueNotification) error {
	if !d.nsLimiter.Allow(n.Namespace) {
		dispatchTotal.WithLabelValues("rate_limited").Inc()
		d.logger.Debug("Namespace rate limited", zap.String("namespace", n.Namespace))
		return nil
	}

	for _, issue := range n.Issues {
		payload := IssuePayload{
			Issue:     issue,
			OwnerKind: n.OwnerKind,
			OwnerName: n.OwnerName,
			Namespace: n.Namespace,
			Reason:    n.Reason,
		}
		for _, s := range d.senders {
			if !s.ShouldSend(issue.Severity) {
				dispatchTotal.WithLabelValues("filtered").Inc()
				continue
			}
			if err := s.Send(ctx, payload); err != nil {
				dispatchTotal.WithLabelValues("enqueue_failed").Inc()
				d.logger.Error("External sender enqueue failed",
					zap.String("sender", s.Name()),
					zap.Error(err),
				)
				continue
			}
			dispatchTotal.WithLabelValues("sent").Inc()
		}
	}

	d.logger.Info("Dispatched issues",
		zap.String("namespace", n.Namespace),
		zap.String("owner_kind", n.OwnerKind),
		zap.String("owner_name", n.OwnerName),
		zap.Int("issue_count", len(n.Issues)),
	)

	return nil
}

// evictLoop periodically drops rate limiters for namespaces not seen recently.
func (d *Dispatcher) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.nsLimiter.Evict(time.Hour)
		}
	}
}
