package localfs

import "os"

// atomicWriter buffers writes in a temporary file and renames it over
// the target on Close. If any write failed, Close discards the
// temporary file and reports the write error instead of committing
// partial content.
type atomicWriter struct {
	file     *os.File
	target   string
	writeErr error
	closed   bool
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	if err != nil {
		w.writeErr = err
	}
	return n, err
}

func (w *atomicWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.writeErr != nil {
		w.file.Close()
		os.Remove(w.file.Name())
		return w.writeErr
	}

	if err := w.file.Sync(); err != nil {
		w.file.Close()
		os.Remove(w.file.Name())
		return err
	}

	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return err
	}

	if err := os.Rename(w.file.Name(), w.target); err != nil {
		os.Remove(w.file.Name())
		return err
	}

	return nil
}
