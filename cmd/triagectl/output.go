package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/yaml"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

// IssueList is the classify/events result: a plain array so the calling
// runbook can parse stdout directly.
type IssueList []classifier.Issue

// RulesResult is the result of the rules command.
type RulesResult struct {
	Suppressions []string          `json:"suppressions"`
	Rules        []classifier.Rule `json:"rules"`
	Total        int               `json:"total"`
}

// getClientFunc is the function used to create a Kubernetes client.
// It can be overridden in tests to inject a fake client.
var getClientFunc = defaultGetClient

// getClient creates a Kubernetes clientset.
func getClient() (kubernetes.Interface, error) {
	return getClientFunc()
}

func defaultGetClient() (kubernetes.Interface, error) {
	// Use in-cluster config or kubeconfig
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		rules,
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		return nil, err
	}

	return kubernetes.NewForConfig(config)
}

// outputResult outputs the result in the specified format.
func outputResult(result interface{}, format string) error {
	switch format {
	case "yaml":
		return outputYAML(result)
	case "table":
		return outputTable(result)
	default:
		return outputJSON(result)
	}
}

func outputJSON(result interface{}) error {
	// An empty issue list must print as [], never null.
	if issues, ok := result.(IssueList); ok && len(issues) == 0 {
		fmt.Println("[]")
		return nil
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputTable(result interface{}) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case IssueList:
		return outputIssuesTable(w, r)
	case RulesResult:
		return outputRulesTable(w, r)
	default:
		// Fall back to JSON for unknown types
		return outputJSON(result)
	}
}

func outputIssuesTable(w *tabwriter.Writer, issues IssueList) error {
	fmt.Fprintf(w, "ISSUES\t%d\n\n", len(issues))
	if len(issues) == 0 {
		return nil
	}

	fmt.Fprintln(w, "SEVERITY\tTITLE\tNEXT STEPS")
	for _, issue := range issues {
		steps := strings.ReplaceAll(issue.NextSteps, "\n", "; ")
		fmt.Fprintf(w, "%d\t%s\t%s\n", issue.Severity, issue.Title, steps)
	}

	return nil
}

func outputRulesTable(w *tabwriter.Writer, r RulesResult) error {
	fmt.Fprintf(w, "RULES\t%d\n", r.Total)
	fmt.Fprintf(w, "SUPPRESSIONS\t%s\n\n", strings.Join(r.Suppressions, ", "))

	fmt.Fprintln(w, "NAME\tKIND\tSEVERITY\tTRIGGERS")
	for _, rule := range r.Rules {
		kind := rule.Kind
		if kind == "" {
			kind = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			rule.Name, kind, rule.Severity, strings.Join(rule.Triggers, " | "))
	}

	return nil
}
