package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cadence/internal/logging"
)

// ErrWriterClosed is returned by Submit after Close.
var ErrWriterClosed = errors.New("snapshot writer closed")

// Writer saves snapshots on a background goroutine. Submit never blocks on
// I/O; while a save is in flight only the newest submitted payload is kept.
type Writer struct {
	backend Backend
	logger  *slog.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	pending   []byte
	dirty     bool
	closed    bool
	submitted uint64
	saved     uint64
	lastErr   error

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewWriter starts a writer in front of backend.
func NewWriter(backend Backend, logger *slog.Logger) *Writer {
	w := &Writer{
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "persist"),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Submit queues data for saving, replacing any payload not yet written.
func (w *Writer) Submit(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWriterClosed
	}
	w.pending = data
	w.dirty = true
	w.submitted++
	w.cond.Broadcast()
	return nil
}

// Flush waits until everything submitted so far has been written and
// returns the error of the most recent save, if any.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	target := w.submitted
	for w.saved < target {
		w.cond.Wait()
	}
	return w.lastErr
}

// Close drains the pending payload, stops the goroutine, and closes the
// backend.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.cond.Broadcast()
		w.mu.Unlock()
		<-w.done

		w.mu.Lock()
		saveErr := w.lastErr
		w.mu.Unlock()
		w.closeErr = errors.Join(saveErr, w.backend.Close())
	})
	return w.closeErr
}

func (w *Writer) run() {
	defer close(w.done)
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		for !w.dirty && !w.closed {
			w.cond.Wait()
		}
		if !w.dirty {
			return
		}
		data, generation := w.pending, w.submitted
		w.pending, w.dirty = nil, false
		w.mu.Unlock()

		err := w.backend.Save(context.Background(), data)
		if err != nil {
			logging.WarnWithContext(w.logger, "snapshot save failed", "snapshot_save_failed",
				logging.Error(err),
				logging.String(logging.FieldBackend, w.backend.Kind()),
				logging.String("path", w.backend.Path()),
				logging.String(logging.FieldErrorHint, "check that the data directory is writable"),
				logging.String(logging.FieldImpact, "recent changes may be lost on restart"))
		} else {
			w.logger.Debug("snapshot saved",
				logging.String(logging.FieldBackend, w.backend.Kind()),
				logging.Int("bytes", len(data)))
		}

		w.mu.Lock()
		w.saved = generation
		w.lastErr = err
		w.cond.Broadcast()
	}
}
