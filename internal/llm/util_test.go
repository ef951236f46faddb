package llm

import (
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"key\": \"value\"}\n  ",
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestStripWrappingQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "double quoted object",
			input:    `"{\"key\": 1}"`,
			expected: `{\"key\": 1}`,
		},
		{
			name:     "single quoted object",
			input:    `'{"key": 1}'`,
			expected: `{"key": 1}`,
		},
		{
			name:     "nested quote layers",
			input:    `'"{"key": 1}"'`,
			expected: `{"key": 1}`,
		},
		{
			name:     "unquoted text untouched",
			input:    `{"key": 1}`,
			expected: `{"key": 1}`,
		},
		{
			name:     "interior quotes kept",
			input:    `he said "hi"`,
			expected: `he said "hi"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripWrappingQuotes(tt.input)
			if result != tt.expected {
				t.Errorf("StripWrappingQuotes() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "object buried in prose",
			input:    "Here is the result:\n{\"alert\": true} hope that helps",
			expected: `{"alert": true}`,
		},
		{
			name:     "nested objects",
			input:    `prefix {"outer": {"inner": 1}} suffix`,
			expected: `{"outer": {"inner": 1}}`,
		},
		{
			name:     "braces inside string literal",
			input:    `{"content": "use {} carefully"}`,
			expected: `{"content": "use {} carefully"}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"content": "he said \"}\""}`,
			expected: `{"content": "he said \"}\""}`,
		},
		{
			name:     "unbalanced object",
			input:    `{"key": "value"`,
			expected: "",
		},
		{
			name:     "no object at all",
			input:    "plain prose without JSON",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FirstJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("FirstJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}
