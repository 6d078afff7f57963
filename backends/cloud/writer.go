package cloud

import (
	"errors"
	"io"
	"sync/atomic"
)

// uploadWriter is the io.WriteCloser handed out by OpenWriter.
type uploadWriter struct {
	pw       *io.PipeWriter
	done     chan error
	finished atomic.Bool
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *uploadWriter) Close() error {
	if !w.finished.CompareAndSwap(false, true) {
		return errors.New("upload already closed")
	}
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
