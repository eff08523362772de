package main

import (
	"github.com/spf13/cobra"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the built-in classification rule table",
		Long: `Print the ordered rule table: trigger patterns, optional kind gate,
severity, and the suggested next steps for each rule, plus the suppression
patterns evaluated before everything else.`,
		RunE: runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	engine := classifier.New()
	result := RulesResult{
		Suppressions: engine.Suppressions(),
		Rules:        engine.Rules(),
		Total:        len(engine.Rules()),
	}
	return outputResult(result, outputFmt)
}
