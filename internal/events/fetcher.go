// Package events gathers Kubernetes event messages for a workload so they can
// be fed to the classifier as a single newline-joined blob.
package events

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/util"
)

// Fetcher lists core/v1 Events and extracts the messages attributed to a
// workload and its children (pods, replicasets).
type Fetcher struct {
	client kubernetes.Interface
	logger *zap.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(client kubernetes.Interface, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.Named("events"),
	}
}

// Messages returns the newline-joined, chronologically ordered, deduplicated
// event messages for the named workload in the namespace. Events are
// attributed to the workload when the involved object is the workload itself
// or a child named with the workload's name as prefix (pod and replicaset
// naming convention). The prefix heuristic is deliberately loose: a sibling
// workload whose name extends the prefix ("web" vs "web-canary") is also
// matched, trading occasional over-attribution for never losing a child pod
// event. Events lists run without a field selector because child events name
// generated pods, not the workload.
func (f *Fetcher) Messages(ctx context.Context, namespace, ownerKind, ownerName string) (string, error) {
	list, err := f.client.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("list events in %s: %w", namespace, err)
	}

	matched := make([]corev1.Event, 0, len(list.Items))
	for _, event := range list.Items {
		if attributedTo(event, ownerKind, ownerName) {
			matched = append(matched, event)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return eventTime(matched[i]).Before(eventTime(matched[j]))
	})

	messages := make([]string, 0, len(matched))
	for _, event := range matched {
		if event.Message != "" {
			messages = append(messages, event.Message)
		}
	}

	f.logger.Debug("Gathered workload events",
		zap.String("namespace", namespace),
		zap.String("owner_kind", ownerKind),
		zap.String("owner_name", ownerName),
		zap.Int("event_count", len(matched)),
	)

	return strings.Join(util.UniqueStrings(messages), "\n"), nil
}

// attributedTo reports whether the event belongs to the workload or one of
// its children. Child pods and replicasets carry the workload name plus a
// generated suffix.
func attributedTo(event corev1.Event, ownerKind, ownerName string) bool {
	involved := event.InvolvedObject
	if involved.Kind == ownerKind && involved.Name == ownerName {
		return true
	}
	return strings.HasPrefix(involved.Name, ownerName+"-")
}

// eventTime picks the most recent timestamp an event carries. Series events
// populate LastTimestamp; one-shot events only have EventTime or CreationTimestamp.
func eventTime(event corev1.Event) time.Time {
	if !event.LastTimestamp.IsZero() {
		return event.LastTimestamp.Time
	}
	if !event.EventTime.IsZero() {
		return event.EventTime.Time
	}
	return event.CreationTimestamp.Time
}
