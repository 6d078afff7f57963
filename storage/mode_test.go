package storage

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Mode
		shouldError bool
	}{
		{
			name:     "default is binary read",
			input:    "",
			expected: Mode{Direction: Read, Encoding: Binary},
		},
		{
			name:     "binary read",
			input:    "rb",
			expected: Mode{Direction: Read, Encoding: Binary},
		},
		{
			name:     "text read",
			input:    "r",
			expected: Mode{Direction: Read, Encoding: Text},
		},
		{
			name:     "binary write",
			input:    "wb",
			expected: Mode{Direction: Write, Encoding: Binary},
		},
		{
			name:     "text write",
			input:    "w",
			expected: Mode{Direction: Write, Encoding: Text},
		},
		{
			name:        "read write combination",
			input:       "rw",
			shouldError: true,
		},
		{
			name:        "append",
			input:       "a",
			shouldError: true,
		},
		{
			name:        "exclusive create",
			input:       "x",
			shouldError: true,
		},
		{
			name:        "uppercase",
			input:       "RB",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMode(tt.input)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for mode %q, got none", tt.input)
				}
				if !errors.Is(err, ErrInvalidMode) {
					t.Errorf("expected ErrInvalidMode, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error for mode %q: %v", tt.input, err)
			}
			if m != tt.expected {
				t.Errorf("for mode %q, expected %+v, got %+v", tt.input, tt.expected, m)
			}
		})
	}
}
