package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil input", nil, nil},
		{"empty input", []string{}, nil},
		{"no duplicates", []string{"a", "b"}, []string{"a", "b"}},
		{"duplicates removed in order", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
		{"all identical", []string{"x", "x", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UniqueStrings(tt.input))
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "", TruncateString("hello", 0))
	assert.Equal(t, "hello", TruncateString("hello", 5))
	assert.Equal(t, "hel...", TruncateString("hello", 3))
	assert.Equal(t, "héllo", TruncateString("héllo", 5), "rune-safe")
}
