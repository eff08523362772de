package notifier

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/watcher"
)

// recordingSender captures payloads for assertions.
type recordingSender struct {
	mu        sync.Mutex
	payloads  []IssuePayload
	threshold int
	started   bool
}

func (r *recordingSender) Name() string { return "recording" }

func (r *recordingSender) Send(_ context.Context, payload IssuePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

func (r *recordingSender) ShouldSend(severity int) bool { return severity <= r.threshold }

func (r *recordingSender) Start(_ context.Context) { r.started = true }

func (r *recordingSender) sent() []IssuePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]IssuePayload(nil), r.payloads...)
}

func testNotification(issues ...classifier.Issue) watcher.IssueNotification {
	return watcher.IssueNotification{
		Issues:    issues,
		Namespace: "prod",
		OwnerKind: "Deployment",
		OwnerName: "web",
		EventUID:  "uid-1",
		Reason:    "BackOff",
	}
}

func TestDispatchFansOutIssues(t *testing.T) {
	sender := &recordingSender{threshold: classifier.SeverityInformational}
	opts := DefaultDispatcherOptions()
	opts.Senders = []Sender{sender}
	d := NewDispatcher(zap.NewNop(), opts)

	n := testNotification(
		classifier.Issue{Severity: 2, Title: "image access issues"},
		classifier.Issue{Severity: 3, Title: "liveness probes"},
	)
	require.NoError(t, d.Dispatch(context.Background(), n))

	sent := sender.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "image access issues", sent[0].Issue.Title)
	assert.Equal(t, "liveness probes", sent[1].Issue.Title)
	assert.Equal(t, "prod", sent[0].Namespace)
	assert.Equal(t, "Deployment", sent[0].OwnerKind)
	assert.Equal(t, "web", sent[0].OwnerName)
}

func TestDispatchFiltersBySeverity(t *testing.T) {
	sender := &recordingSender{threshold: classifier.SeverityMajor}
	opts := DefaultDispatcherOptions()
	opts.Senders = []Sender{sender}
	d := NewDispatcher(zap.NewNop(), opts)

	n := testNotification(
		classifier.Issue{Severity: 2, Title: "urgent"},
		classifier.Issue{Severity: 4, Title: "informational"},
	)
	require.NoError(t, d.Dispatch(context.Background(), n))

	sent := sender.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "urgent", sent[0].Issue.Title)
}

func TestDispatchRateLimitsPerNamespace(t *testing.T) {
	sender := &recordingSender{threshold: classifier.SeverityInformational}
	d := NewDispatcher(zap.NewNop(), DispatcherOptions{
		RateLimitPerMinute: 10, // burst of 1
		Senders:            []Sender{sender},
	})

	issue := classifier.Issue{Severity: 2, Title: "t"}
	require.NoError(t, d.Dispatch(context.Background(), testNotification(issue)))
	require.NoError(t, d.Dispatch(context.Background(), testNotification(issue)))

	// Burst is 1 at 10/minute: the second dispatch is dropped.
	assert.Len(t, sender.sent(), 1)
}

func TestStartStartsSenders(t *testing.T) {
	sender := &recordingSender{}
	opts := DefaultDispatcherOptions()
	opts.Senders = []Sender{sender}
	d := NewDispatcher(zap.NewNop(), opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	assert.True(t, sender.started)
}
