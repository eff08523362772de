// triagectl classifies Kubernetes workload events into structured issues.
//
// Installation:
//
//	go build -o triagectl ./cmd/triagectl
//	mv triagectl /usr/local/bin/
//
// Usage:
//
//	triagectl classify --kind StatefulSet --name pg-primary "Liveness probe failed"
//	triagectl events -n my-namespace --kind Deployment --name web
//	triagectl rules
//	triagectl watch
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	outputFmt string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "triagectl",
		Short: "Classify workload events into structured issues",
		Long: `triagectl maps Kubernetes event and log messages to structured issues
(severity, title, details, next_steps) using an ordered rule table.

Output is a JSON array the calling runbook forwards to the reporting platform.`,
		Version: version,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "json", "Output format: json, yaml, table")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
