package storage

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Handle is one open stream bound to a (storage, path, mode) triple.
// It is created by Storage.Open, reaches its terminal closed state
// exactly once, and is not safe for concurrent use; every caller
// obtains its own handle.
type Handle struct {
	path   string
	mode   Mode
	reader io.ReadCloser
	writer io.WriteCloser
	closed bool
}

// Path returns the relative path the handle was opened with.
func (h *Handle) Path() string {
	return h.path
}

// Mode returns the decoded mode the handle was opened with.
func (h *Handle) Mode() Mode {
	return h.mode
}

func (h *Handle) readable() error {
	if h.closed {
		return ErrHandleClosed
	}
	if h.mode.Direction != Read {
		return fmt.Errorf("%w: handle opened for writing", ErrWrongMode)
	}
	return nil
}

func (h *Handle) writable() error {
	if h.closed {
		return ErrHandleClosed
	}
	if h.mode.Direction != Write {
		return fmt.Errorf("%w: handle opened for reading", ErrWrongMode)
	}
	return nil
}

// Read reads up to len(p) bytes from the underlying stream. It fails
// with ErrWrongMode on a write handle and ErrHandleClosed after Close.
// Text-mode UTF-8 validation applies to the whole-content reads
// (ReadAll, ReadString), not to individual chunks.
func (h *Handle) Read(p []byte) (int, error) {
	if err := h.readable(); err != nil {
		return 0, err
	}
	return h.reader.Read(p)
}

// ReadAll reads all remaining bytes. In text mode the content must be
// valid UTF-8 or the call fails with ErrDecode.
func (h *Handle) ReadAll() ([]byte, error) {
	if err := h.readable(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(h.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", h.path, err)
	}

	if h.mode.Encoding == Text && !utf8.Valid(data) {
		return nil, fmt.Errorf("%w in %s", ErrDecode, h.path)
	}

	return data, nil
}

// ReadString reads all remaining content as a UTF-8 string. It is the
// text-mode counterpart of ReadAll and shares its error behavior.
func (h *Handle) ReadString() (string, error) {
	data, err := h.ReadAll()
	if err != nil {
		return "", err
	}
	if h.mode.Encoding == Binary && !utf8.Valid(data) {
		return "", fmt.Errorf("%w in %s", ErrDecode, h.path)
	}
	return string(data), nil
}

// Write writes p to the underlying sink and returns the number of
// bytes written. It fails with ErrWrongMode on a read handle and
// ErrHandleClosed after Close.
func (h *Handle) Write(p []byte) (int, error) {
	if err := h.writable(); err != nil {
		return 0, err
	}
	return h.writer.Write(p)
}

// WriteString writes s and returns the count of logical units written:
// characters in text mode, bytes in binary mode.
func (h *Handle) WriteString(s string) (int, error) {
	n, err := h.Write([]byte(s))
	if err != nil {
		return n, err
	}
	if h.mode.Encoding == Text {
		return utf8.RuneCountInString(s), nil
	}
	return n, nil
}

// Close releases the underlying stream. For write handles it commits
// the pending write (upload or rename) and returns its result. Close
// is idempotent; Read and Write on a closed handle fail with
// ErrHandleClosed.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	if h.writer != nil {
		return h.writer.Close()
	}
	return h.reader.Close()
}
