package watcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	issuesEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_issues_emitted_total",
			Help: "Total issues produced by the classifier, by severity.",
		},
		[]string{"severity"},
	)
	eventsSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_events_suppressed_total",
			Help: "Total Warning events matching a suppression pattern.",
		},
	)
	eventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_events_dropped_total",
			Help: "Total Warning events dropped before classification, by reason.",
		},
		[]string{"reason"},
	)
)
