// Package worker drains audit events to a store off the request path. The
// orchestrator emits into a bounded inbox and returns immediately; a single
// background goroutine appends to the store. A full inbox surfaces an error
// to the emitter rather than blocking a validation run.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "julee/pkg/platform/audit"
)

const (
	defaultBuffer = 256
	flushTimeout  = 5 * time.Second
)

// Worker is an asynchronous audit publisher backed by an event store.
type Worker struct {
	store  audit.Store
	logger *slog.Logger
	inbox  chan audit.Event
	done   chan struct{}
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithBuffer sets the inbox capacity.
func WithBuffer(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.inbox = make(chan audit.Event, size)
		}
	}
}

func New(store audit.Store, opts ...Option) *Worker {
	w := &Worker{
		store: store,
		inbox: make(chan audit.Event, defaultBuffer),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Emit enqueues the event for background persistence. Never blocks: a full
// inbox drops the event and reports it to the caller.
func (w *Worker) Emit(_ context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case w.inbox <- event:
		return nil
	default:
		return fmt.Errorf("audit inbox full, dropped %s", event.Action)
	}
}

// Run appends queued events until ctx is cancelled, then flushes whatever is
// still in the inbox before returning. Append failures are logged and the
// event is dropped; audit persistence never takes down the worker.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return ctx.Err()
		case event := <-w.inbox:
			w.append(ctx, event)
		}
	}
}

// Wait blocks until Run has returned, including its final flush.
func (w *Worker) Wait() {
	<-w.done
}

func (w *Worker) append(ctx context.Context, event audit.Event) {
	if err := w.store.Append(context.WithoutCancel(ctx), event); err != nil && w.logger != nil {
		w.logger.Warn("audit append failed",
			"action", event.Action,
			"validation_id", event.ValidationID,
			"error", err,
		)
	}
}

func (w *Worker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			w.append(ctx, event)
		default:
			return
		}
	}
}
