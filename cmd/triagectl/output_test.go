package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runwhen-contrib/rw-cli-codecollection-sub016/internal/classifier"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	r.Close()

	return buf.String()
}

func sampleIssues() IssueList {
	return IssueList{
		{
			Severity:  2,
			Title:     "Deployment `web` has image access issues - check repository authentication and image path.",
			Details:   "ImagePullBackOff",
			NextSteps: "List ImagePullBackoff Events and Test Path and Tags for Namespace",
		},
		{
			Severity:  3,
			Title:     "Deployment `web` has containers failing liveness probes and restarting.",
			Details:   "Liveness probe failed",
			NextSteps: "Check Liveness Probe Configuration for Deployment `web`",
		},
	}
}

func TestOutputJSONIssues(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(sampleIssues(), "json"))
	})

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(2), decoded[0]["severity"])
	assert.Contains(t, decoded[0]["title"], "image access issues")
	assert.Contains(t, decoded[1], "next_steps")
}

func TestOutputJSONEmptyIssueList(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(IssueList{}, "json"))
	})

	assert.Equal(t, "[]\n", output)
}

func TestOutputYAMLIssues(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(sampleIssues(), "yaml"))
	})

	assert.Contains(t, output, "severity: 2")
	assert.Contains(t, output, "next_steps:")
}

func TestOutputTableIssues(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(sampleIssues(), "table"))
	})

	assert.Contains(t, output, "SEVERITY")
	assert.Contains(t, output, "image access issues")
	assert.Contains(t, output, "liveness probes")
}

func TestOutputTableEmptyIssues(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(IssueList{}, "table"))
	})

	assert.Contains(t, output, "ISSUES")
	assert.NotContains(t, output, "SEVERITY\tTITLE")
}

func TestOutputTableRules(t *testing.T) {
	engine := classifier.New()
	result := RulesResult{
		Suppressions: engine.Suppressions(),
		Rules:        engine.Rules(),
		Total:        len(engine.Rules()),
	}

	output := captureStdout(t, func() {
		require.NoError(t, outputResult(result, "table"))
	})

	assert.Contains(t, output, "RULES")
	assert.Contains(t, output, "insufficient-cluster-resources")
	assert.Contains(t, output, "statefulset-containers-not-ready")
	// Kind-agnostic rules display a wildcard.
	assert.Contains(t, output, "*")
}

func TestOutputUnknownTypeFallsBackToJSON(t *testing.T) {
	output := captureStdout(t, func() {
		require.NoError(t, outputResult(map[string]string{"k": "v"}, "table"))
	})

	assert.Contains(t, output, `"k": "v"`)
}
