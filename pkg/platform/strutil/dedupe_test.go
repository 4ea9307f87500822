package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims and lowercases",
			input:    []string{"  Go ", "POSTGRES", "go"},
			expected: []string{"go", "postgres"},
		},
		{
			name:     "drops empty values",
			input:    []string{"", "  ", "jwt"},
			expected: []string{"jwt"},
		},
		{
			name:     "preserves first-seen order",
			input:    []string{"b", "a", "b", "c", "a"},
			expected: []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
