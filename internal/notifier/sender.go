package notifier

import (
	"context"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

// IssuePayload is one classified issue plus the workload it is attributed to.
type IssuePayload struct {
	Issue     classifier.Issue `json:"issue"`
	OwnerKind string           `json:"ownerKind"`
	OwnerName string           `json:"ownerName"`
	Namespace string           `json:"namespace"`
	Reason    string           `json:"reason,omitempty"`
}

// Sender is the interface for external issue sinks (webhook, etc.). Each
// implementation handles its own async delivery, retry logic, and filtering.
type Sender interface {
	// Name returns the sender's identifier (e.g., "webhook").
	Name() string

	// Send delivers an issue payload to the external channel.
	Send(ctx context.Context, payload IssuePayload) error

	// ShouldSend returns true if this sender should handle an issue of the
	// given severity (1 = most critical, 4 = informational).
	ShouldSend(severity int) bool

	// Start begins any background workers. Non-blocking.
	Start(ctx context.Context)
}
