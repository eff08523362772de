package util

// UniqueStrings returns the input with duplicates removed, first occurrence
// wins, order preserved. Nil and empty inputs return nil.
func UniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

// TruncateString shortens s to at most limit runes, appending an ellipsis
// when truncation happened. Used when embedding raw event text in log fields.
func TruncateString(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
