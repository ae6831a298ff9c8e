package binding

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer is notified after each successful store and each rejected
// write. The metric package provides the Prometheus implementation.
type Observer interface {
	ValueWritten(op string)
	WriteRejected(op string, err error)
}

// Option configures a Binding.
type Option func(*Binding)

// WithDisposedFlag shares the disposed flag of the owning address space.
// Once the flag is set every operation fails with modelerr.ErrDisposed.
func WithDisposedFlag(flag *atomic.Bool) Option {
	return func(b *Binding) {
		b.disposed = flag
	}
}

// WithObserver registers o for store and rejection events.
func WithObserver(o Observer) Option {
	return func(b *Binding) {
		b.observer = o
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binding) {
		b.logger = logger
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Binding) {
		b.now = now
	}
}

type nopObserver struct{}

func (nopObserver) ValueWritten(string)         {}
func (nopObserver) WriteRejected(string, error) {}
