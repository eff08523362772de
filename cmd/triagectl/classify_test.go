package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetClassifyFlags restores the package-level flag variables after a test.
func resetClassifyFlags(t *testing.T) {
	t.Helper()
	origKind, origName, origFile, origFmt := classifyKind, classifyName, classifyFromFile, outputFmt
	t.Cleanup(func() {
		classifyKind, classifyName, classifyFromFile, outputFmt = origKind, origName, origFile, origFmt
	})
}

func TestRunClassify_MatchedRule(t *testing.T) {
	resetClassifyFlags(t)
	classifyKind = "Deployment"
	classifyName = "web"
	classifyFromFile = ""
	outputFmt = "json"

	output := captureStdout(t, func() {
		err := runClassify(classifyCmd(), []string{"0/1 nodes are available: Insufficient cpu"})
		require.NoError(t, err)
	})

	var issues []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, float64(2), issues[0]["severity"])
	assert.Contains(t, issues[0]["title"], "cannot be scheduled - not enough cluster resources.")
}

func TestRunClassify_SuppressedPrintsEmptyArray(t *testing.T) {
	resetClassifyFlags(t)
	classifyKind = "StatefulSet"
	classifyName = "pg-primary"
	classifyFromFile = ""
	outputFmt = "json"

	output := captureStdout(t, func() {
		err := runClassify(classifyCmd(), []string{"Created container server"})
		require.NoError(t, err)
	})

	assert.Equal(t, "[]\n", output)
}

func TestRunClassify_FallbackIssue(t *testing.T) {
	resetClassifyFlags(t)
	cmd := classifyCmd()
	classifyKind = "DaemonSet"
	classifyName = "fluentd"
	classifyFromFile = ""
	outputFmt = "json"

	output := captureStdout(t, func() {
		err := runClassify(cmd, []string{"some totally unrecognized event string"})
		require.NoError(t, err)
	})

	var issues []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, float64(4), issues[0]["severity"])
	assert.Contains(t, issues[0]["title"], "DaemonSet")
	assert.Contains(t, issues[0]["title"], "fluentd")
}

func TestRunClassify_FromFile(t *testing.T) {
	resetClassifyFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte("ImagePullBackOff\nLiveness probe failed"), 0600))

	cmd := classifyCmd()
	classifyKind = "Deployment"
	classifyName = "api"
	classifyFromFile = path
	outputFmt = "json"

	output := captureStdout(t, func() {
		err := runClassify(cmd, nil)
		require.NoError(t, err)
	})

	var issues []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, float64(2), issues[0]["severity"])
	assert.Equal(t, float64(3), issues[1]["severity"])
}

func TestRunClassify_MissingFile(t *testing.T) {
	resetClassifyFlags(t)
	cmd := classifyCmd()
	classifyFromFile = filepath.Join(t.TempDir(), "does-not-exist")

	err := runClassify(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read messages file")
}

func TestReadMessages_PositionalArg(t *testing.T) {
	resetClassifyFlags(t)
	classifyFromFile = ""

	messages, err := readMessages([]string{"CrashLoopBackOff"})
	require.NoError(t, err)
	assert.Equal(t, "CrashLoopBackOff", messages)
}
