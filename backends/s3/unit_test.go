package s3

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "no such key",
			err:      awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil),
			expected: true,
		},
		{
			name:     "head object not found",
			err:      awserr.New("NotFound", "not found", nil),
			expected: true,
		},
		{
			name:     "access denied",
			err:      awserr.New("AccessDenied", "access denied", nil),
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
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

func TestNewAdapterRequiresBucket(t *testing.T) {
	if _, err := NewAdapter(Config{}, nil); err == nil {
		t.Fatal("expected error for empty bucket, got none")
	}
}
