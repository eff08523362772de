package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

var (
	classifyKind     string
	classifyName     string
	classifyFromFile string
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [messages]",
		Short: "Classify event messages into structured issues",
		Long: `Map a blob of event/log messages to structured issues.

Messages come from the positional argument, from --from-file, or from stdin
when the argument is "-" or absent. The result is always a valid JSON array;
suppressed (benign) input prints [].

Examples:
  # Classify a single message
  triagectl classify --kind Deployment --name web "0/1 nodes are available: Insufficient cpu"

  # Classify kubectl output piped through stdin
  kubectl get events -o jsonpath='{range .items[*]}{.message}{"\n"}{end}' | triagectl classify --kind StatefulSet --name kafka -`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringVar(&classifyKind, "kind", "", "Owner workload kind (Deployment, StatefulSet, DaemonSet, ...)")
	cmd.Flags().StringVar(&classifyName, "name", "", "Owner workload name")
	cmd.Flags().StringVar(&classifyFromFile, "from-file", "", "Read messages from a file instead of the argument")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	messages, err := readMessages(args)
	if err != nil {
		return err
	}

	issues := classifier.New().Classify(messages, classifyKind, classifyName)

	return outputResult(IssueList(issues), outputFmt)
}

// readMessages resolves the message blob from --from-file, the positional
// argument, or stdin.
func readMessages(args []string) (string, error) {
	if classifyFromFile != "" {
		data, err := os.ReadFile(classifyFromFile)
		if err != nil {
			return "", fmt.Errorf("read messages file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read messages from stdin: %w", err)
	}
	return string(data), nil
}
