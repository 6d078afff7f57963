package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silolabs/silo/storage"
)

func TestFileSystemStorage_Lifecycle(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	// Write through a text handle.
	h, err := st.Open(ctx, "foo.txt", "w")
	require.NoError(t, err)

	n, err := h.WriteString("Hello World!")
	require.NoError(t, err)
	require.Equal(t, 12, n)
	require.NoError(t, h.Close())

	// Read it back.
	h, err = st.Open(ctx, "foo.txt", "r")
	require.NoError(t, err)

	content, err := h.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Hello World!", content)
	require.NoError(t, h.Close())

	// Size matches the byte count.
	size, err := st.Size(ctx, "foo.txt")
	require.NoError(t, err)
	require.Equal(t, int64(12), size)

	// Existence transitions around write and delete.
	exists, err := st.Exists(ctx, "bar.txt")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = st.Exists(ctx, "foo.txt")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, st.Delete(ctx, "foo.txt"))

	exists, err = st.Exists(ctx, "foo.txt")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestFileSystemStorage_BinaryRoundTrip(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	data := []byte{0x00, 0xff, 0x10, 0x80, 0x7f}

	h, err := st.Open(ctx, "blob.bin", "wb")
	require.NoError(t, err)
	n, err := h.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, h.Close())

	h, err = st.Open(ctx, "blob.bin", "rb")
	require.NoError(t, err)
	got, err := h.ReadAll()
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.NoError(t, h.Close())

	size, err := st.Size(ctx, "blob.bin")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), size)
}

func TestFileSystemStorage_NestedPaths(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	// Parent directories are created implicitly on write.
	err = st.WithFile(ctx, "a/b/c/file.txt", "w", func(h *storage.Handle) error {
		_, err := h.WriteString("nested")
		return err
	})
	require.NoError(t, err)

	exists, err := st.Exists(ctx, "a/b/c/file.txt")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestFileSystemStorage_PathTraversal(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	for _, path := range []string{"../../etc/passwd", "/etc/passwd", "dir/../../x", ""} {
		_, err := st.Open(ctx, path, "rb")
		require.ErrorIs(t, err, storage.ErrInvalidPath, "open %q", path)

		_, err = st.Exists(ctx, path)
		require.ErrorIs(t, err, storage.ErrInvalidPath, "exists %q", path)

		_, err = st.Size(ctx, path)
		require.ErrorIs(t, err, storage.ErrInvalidPath, "size %q", path)

		err = st.Delete(ctx, path)
		require.ErrorIs(t, err, storage.ErrInvalidPath, "delete %q", path)
	}
}

func TestFileSystemStorage_NotFound(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	_, err = st.Open(ctx, "missing.txt", "rb")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.Size(ctx, "missing.txt")
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = st.Delete(ctx, "missing.txt")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileSystemStorage_InvalidMode(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Open(context.Background(), "foo.txt", "rw")
	require.ErrorIs(t, err, storage.ErrInvalidMode)
}

func TestFileSystemStorage_TextDecodeError(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	err = st.WithFile(ctx, "bad.bin", "wb", func(h *storage.Handle) error {
		_, err := h.Write([]byte{0xff, 0xfe})
		return err
	})
	require.NoError(t, err)

	h, err := st.Open(ctx, "bad.bin", "r")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.ReadAll()
	require.ErrorIs(t, err, storage.ErrDecode)
}

func TestFileSystemStorage_WithFileClosesOnError(t *testing.T) {
	st, err := storage.NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()

	var leaked *storage.Handle
	err = st.WithFile(ctx, "foo.txt", "w", func(h *storage.Handle) error {
		leaked = h
		_, werr := h.WriteString("partial")
		require.NoError(t, werr)
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	// The handle was closed on the error path.
	_, err = leaked.Write([]byte("more"))
	require.ErrorIs(t, err, storage.ErrHandleClosed)
}

func TestFileSystemStorage_URL(t *testing.T) {
	root := t.TempDir()
	st, err := storage.NewFileSystemStorage(root)
	require.NoError(t, err)
	defer st.Close()

	url, err := st.URL(context.Background(), "dir/foo.txt")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "file://"), "got %q", url)
	require.True(t, strings.HasSuffix(url, "/dir/foo.txt"), "got %q", url)

	_, err = st.URL(context.Background(), "../escape")
	require.ErrorIs(t, err, storage.ErrInvalidPath)
}
