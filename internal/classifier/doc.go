// Package classifier maps free-text Kubernetes event and log messages to
// structured, actionable issues.
//
// # Contract
//
// The Engine:
//  1. Evaluates suppression patterns first. If any known-benign pattern is
//     present in the message blob, classification short-circuits and returns
//     an empty result.
//  2. Walks the ordered rule table top to bottom. A rule fires when any of
//     its trigger substrings is present in the blob AND, for kind-gated
//     rules, the owner kind matches. Every firing rule appends one Issue;
//     evaluation never stops early, so independent problems (an image pull
//     failure and a failing liveness probe in the same window) each produce
//     their own Issue.
//  3. If no rule fired and the input is non-empty, appends exactly one
//     severity-4 fallback Issue so diagnostic input is never silently dropped.
//
// # Types
//
//	type Issue struct {
//	    Severity  int    // 1 = page-worthy, 4 = informational
//	    Title     string // identifies the affected workload
//	    Details   string // verbatim input messages
//	    NextSteps string // newline-separated remediation suggestions
//	}
//
// # Purity
//
// Classify is a pure function of (messages, ownerKind, ownerName). The Engine
// holds only the static rule table; there is no shared state between calls.
//
// # Constructor
//
//	func New() *Engine                       // built-in rule table
//	func (e *Engine) RegisterRule(rule Rule) // append to the table
//	func (e *Engine) Classify(messages, ownerKind, ownerName string) []Issue
package classifier
