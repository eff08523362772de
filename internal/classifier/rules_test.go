package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// knownPlaceholders are the only template variables the engine interpolates.
var knownPlaceholders = []string{"{owner_kind}", "{owner_name}"}

func TestDefaultRulesWellFormed(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)

	seen := make(map[string]bool)
	for _, rule := range rules {
		t.Run(rule.Name, func(t *testing.T) {
			assert.NotEmpty(t, rule.Name)
			assert.False(t, seen[rule.Name], "duplicate rule name")
			seen[rule.Name] = true

			assert.NotEmpty(t, rule.Triggers, "rule has no triggers")
			for _, trigger := range rule.Triggers {
				assert.NotEmpty(t, trigger)
			}

			assert.GreaterOrEqual(t, rule.Severity, SeverityCritical)
			assert.LessOrEqual(t, rule.Severity, SeverityInformational)

			assert.NotEmpty(t, rule.Title)
			assert.NotEmpty(t, rule.NextSteps)

			assertOnlyKnownPlaceholders(t, rule.Title)
			for _, step := range rule.NextSteps {
				assertOnlyKnownPlaceholders(t, step)
			}
		})
	}
}

// assertOnlyKnownPlaceholders fails when a template contains a {placeholder}
// that the engine will never substitute.
func assertOnlyKnownPlaceholders(t *testing.T, template string) {
	t.Helper()
	stripped := template
	for _, ph := range knownPlaceholders {
		stripped = strings.ReplaceAll(stripped, ph, "")
	}
	assert.NotContains(t, stripped, "{owner", "unknown placeholder in %q", template)
}

func TestDefaultRulesKindGates(t *testing.T) {
	var gatedKinds []string
	for _, rule := range DefaultRules() {
		if rule.Kind != "" {
			gatedKinds = append(gatedKinds, rule.Kind)
		}
	}

	// The merged table carries one ContainersNotReady variant per workload kind.
	assert.Contains(t, gatedKinds, "StatefulSet")
	assert.Contains(t, gatedKinds, "Deployment")
	assert.Contains(t, gatedKinds, "DaemonSet")
}

func TestDefaultSuppressionsNonEmpty(t *testing.T) {
	suppressions := DefaultSuppressions()
	require.NotEmpty(t, suppressions)
	assert.Contains(t, suppressions, "Created container")
}

func TestDefaultRulesTriggersAreCaseSensitive(t *testing.T) {
	engine := New()

	// Lowercased trigger text must not fire the image pull rule.
	issues := engine.Classify("imagepullbackoff", "Deployment", "web")
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityInformational, issues[0].Severity, "expected fallback, not a rule match")
}
