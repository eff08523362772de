package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/events"
)

var (
	eventsNamespace string
	eventsKind      string
	eventsName      string
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Gather workload events from the cluster and classify them",
		Long: `Fetch Kubernetes events for a workload (and its pods), join the messages,
and classify them into structured issues.

Examples:
  # Triage a deployment
  triagectl events -n my-namespace --kind Deployment --name web

  # Triage a statefulset, table output for humans
  triagectl events -n my-namespace --kind StatefulSet --name kafka -o table`,
		RunE: runEvents,
	}

	cmd.Flags().StringVarP(&eventsNamespace, "namespace", "n", "", "Namespace of the workload (required)")
	cmd.Flags().StringVar(&eventsKind, "kind", "", "Owner workload kind (required)")
	cmd.Flags().StringVar(&eventsName, "name", "", "Owner workload name (required)")
	cmd.MarkFlagRequired("namespace")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx := context.Background()

	fetcher := events.NewFetcher(client, zap.NewNop())
	messages, err := fetcher.Messages(ctx, eventsNamespace, eventsKind, eventsName)
	if err != nil {
		return fmt.Errorf("failed to gather events: %w", err)
	}

	issues := classifier.New().Classify(messages, eventsKind, eventsName)

	return outputResult(IssueList(issues), outputFmt)
}
