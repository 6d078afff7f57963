package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "no such key",
			err:      minio.ErrorResponse{Code: "NoSuchKey", Message: "the specified key does not exist"},
			expected: true,
		},
		{
			name:     "not found",
			err:      minio.ErrorResponse{Code: "NotFound", Message: "not found"},
			expected: true,
		},
		{
			name:     "access denied",
			err:      minio.ErrorResponse{Code: "AccessDenied", Message: "access denied"},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFound(tt.err); got != tt.expected {
				t.Errorf("isNotFound(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestNewAdapterValidatesConfig(t *testing.T) {
	ctx := context.Background()

	if _, err := NewAdapter(ctx, Config{Container: "c"}, nil); err == nil {
		t.Error("expected error for missing endpoint, got none")
	}
	if _, err := NewAdapter(ctx, Config{Endpoint: "storage.example.com"}, nil); err == nil {
		t.Error("expected error for missing container, got none")
	}
}
