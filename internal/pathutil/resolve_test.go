package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silolabs/silo/backends"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:     "simple path",
			input:    "file.txt",
			expected: "file.txt",
		},
		{
			name:     "nested path",
			input:    "dir/subdir/file.txt",
			expected: "dir/subdir/file.txt",
		},
		{
			name:     "safe relative navigation",
			input:    "dir/../file.txt",
			expected: "file.txt",
		},
		{
			name:     "current directory prefix",
			input:    "./file.txt",
			expected: "file.txt",
		},
		{
			name:     "repeated slashes",
			input:    "dir//file.txt",
			expected: "dir/file.txt",
		},
		{
			name:     "trailing slash",
			input:    "dir/file.txt/",
			expected: "dir/file.txt",
		},
		{
			name:        "empty path",
			input:       "",
			shouldError: true,
		},
		{
			name:        "absolute path",
			input:       "/etc/passwd",
			shouldError: true,
		},
		{
			name:        "directory traversal",
			input:       "../../etc/passwd",
			shouldError: true,
		},
		{
			name:        "mixed traversal",
			input:       "dir/../../../etc/passwd",
			shouldError: true,
		},
		{
			name:        "traversal back into root",
			input:       "../root/file.txt",
			shouldError: true,
		},
		{
			name:        "resolves to root itself",
			input:       "dir/..",
			shouldError: true,
		},
		{
			name:        "null byte",
			input:       "file\x00.txt",
			shouldError: true,
		},
		{
			name:        "control character",
			input:       "file\x01.txt",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(tt.input)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				if !errors.Is(err, backends.ErrInvalidPath) {
					t.Errorf("expected ErrInvalidPath, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("for input %q, expected %q, got %q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestJoinUnder(t *testing.T) {
	root := filepath.Join("safe", "root")

	tests := []struct {
		name        string
		rel         string
		shouldError bool
	}{
		{
			name: "simple join",
			rel:  "file.txt",
		},
		{
			name: "nested join",
			rel:  "dir/subdir/file.txt",
		},
		{
			name:        "escape attempt",
			rel:         "../../../etc/passwd",
			shouldError: true,
		},
		{
			name:        "absolute path",
			rel:         "/etc/passwd",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := JoinUnder(root, tt.rel)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for rel %q, got none", tt.rel)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error for rel %q: %v", tt.rel, err)
			}
			if !strings.HasPrefix(result, root+string(filepath.Separator)) {
				t.Errorf("result %q is not under root %q", result, root)
			}
		})
	}
}
