package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func init() {
	IsTest = true
}

func TestGetLoggerReturnsSharedInstance(t *testing.T) {
	first := GetLogger()
	second := GetLogger()
	assert.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestMaskSensitiveString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefix   int
		suffix   int
		expected string
	}{
		{"empty", "", 4, 2, ""},
		{"short string fully masked", "abc", 4, 2, "***"},
		{"long key keeps edges", "sk-1234567890abcdef", 4, 2, "sk-1...ef"},
		{"boundary length masked", "abcdefgh", 4, 2, "********"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MaskSensitiveString(tc.input, tc.prefix, tc.suffix))
		})
	}
}
