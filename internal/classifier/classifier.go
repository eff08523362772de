package classifier

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity levels. Lower numbers are more urgent.
const (
	SeverityCritical      = 1
	SeverityMajor         = 2
	SeverityMinor         = 3
	SeverityInformational = 4
)

// Issue is a structured record describing a detected problem, suitable for
// forwarding to the reporting platform.
type Issue struct {
	Severity  int    `json:"severity"`
	Title     string `json:"title"`
	Details   string `json:"details"`
	NextSteps string `json:"next_steps"`
}

// Rule is a static entry in the classification table. Triggers are
// case-sensitive substrings, OR-combined: the rule fires when any trigger is
// present in the message blob. A non-empty Kind additionally gates the rule
// on owner-kind equality. Title and NextSteps are templates interpolating
// {owner_kind} and {owner_name} placeholders.
type Rule struct {
	Name      string   `json:"name"`
	Triggers  []string `json:"triggers"`
	Kind      string   `json:"kind,omitempty"`
	Severity  int      `json:"severity"`
	Title     string   `json:"title"`
	NextSteps []string `json:"nextSteps"`
}

// Matches reports whether the rule fires for the given message blob and owner kind.
func (r Rule) Matches(messages, ownerKind string) bool {
	if r.Kind != "" && r.Kind != ownerKind {
		return false
	}
	for _, trigger := range r.Triggers {
		if strings.Contains(messages, trigger) {
			return true
		}
	}
	return false
}

// Engine evaluates an ordered rule table against event message blobs.
type Engine struct {
	suppressions []string
	rules        []Rule
}

// New creates an Engine with the built-in suppression list and rule table.
func New() *Engine {
	return &Engine{
		suppressions: DefaultSuppressions(),
		rules:        DefaultRules(),
	}
}

// NewEmpty creates an Engine with no suppressions and no rules. Callers build
// the table via RegisterSuppression and RegisterRule.
func NewEmpty() *Engine {
	return &Engine{}
}

// RegisterRule appends a rule to the table. Must be called before Classify
// (not concurrent).
func (e *Engine) RegisterRule(rule Rule) {
	e.rules = append(e.rules, rule)
}

// RegisterSuppression appends a benign pattern to the suppression list.
// Must be called before Classify (not concurrent).
func (e *Engine) RegisterSuppression(pattern string) {
	e.suppressions = append(e.suppressions, pattern)
}

// Rules returns the ordered rule table.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Suppressions returns the suppression patterns.
func (e *Engine) Suppressions() []string {
	return e.suppressions
}

// Classify maps the message blob to zero or more Issues.
//
// Suppression patterns are checked first and force an empty result. Otherwise
// every matching rule contributes one Issue, in table order. If nothing
// matched and the input is non-empty, a single severity-4 fallback Issue is
// returned so the input is never silently dropped. Empty input yields an
// empty result.
func (e *Engine) Classify(messages, ownerKind, ownerName string) []Issue {
	issues := []Issue{}
	if messages == "" {
		return issues
	}

	for _, pattern := range e.suppressions {
		if strings.Contains(messages, pattern) {
			return issues
		}
	}

	for _, rule := range e.rules {
		if rule.Matches(messages, ownerKind) {
			issues = append(issues, buildIssue(rule, messages, ownerKind, ownerName))
		}
	}

	if len(issues) == 0 {
		issues = append(issues, fallbackIssue(messages, ownerKind, ownerName))
	}

	return issues
}

// buildIssue constructs an Issue from a matched rule, interpolating owner
// metadata into the title and next-steps templates. Details carries the input
// verbatim.
func buildIssue(rule Rule, messages, ownerKind, ownerName string) Issue {
	return Issue{
		Severity:  rule.Severity,
		Title:     interpolate(rule.Title, ownerKind, ownerName),
		Details:   messages,
		NextSteps: interpolateAll(rule.NextSteps, ownerKind, ownerName),
	}
}

// fallbackIssue is emitted when no rule matched non-empty input.
func fallbackIssue(messages, ownerKind, ownerName string) Issue {
	return Issue{
		Severity: SeverityInformational,
		Title:    fmt.Sprintf("%s `%s` generated events that require further investigation.", ownerKind, ownerName),
		Details:  messages,
		NextSteps: interpolateAll([]string{
			"Review recent events and logs for {owner_kind} `{owner_name}`.",
			"Escalate to the service owner if the behavior persists.",
		}, ownerKind, ownerName),
	}
}

// interpolate substitutes {owner_kind} and {owner_name} placeholders.
func interpolate(template, ownerKind, ownerName string) string {
	return strings.NewReplacer(
		"{owner_kind}", ownerKind,
		"{owner_name}", ownerName,
	).Replace(template)
}

// interpolateAll interpolates each step and joins them with newlines.
func interpolateAll(steps []string, ownerKind, ownerName string) string {
	interpolated := make([]string, len(steps))
	for i, step := range steps {
		interpolated[i] = interpolate(step, ownerKind, ownerName)
	}
	return strings.Join(interpolated, "\n")
}

// EncodeIssues serializes issues as a JSON array. Empty and nil slices encode
// as "[]", never "null", so downstream parsers always see a valid array.
func EncodeIssues(issues []Issue) ([]byte, error) {
	if len(issues) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(issues)
}
