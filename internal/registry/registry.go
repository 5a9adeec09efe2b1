package registry

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// Failure describes a single delivery that panicked during [Registry.Dispatch].
type Failure struct {
	// Handle identifies the failing registration.
	Handle string

	// CorrelationID links the failure to the log entry carrying the full
	// stack trace.
	CorrelationID string

	// Panic is the recovered panic value rendered as a string.
	Panic string
}

type entry[T any] struct {
	handle  string
	deliver func(T)
}

// Registry is an ordered set of registered delivery functions.
//
// Subscribe and Unsubscribe are safe for concurrent use. Dispatch snapshots
// the registration list and delivers outside the registry lock, so a slow
// observer never blocks subscription changes; as a consequence an observer
// may still receive one in-flight notification after Unsubscribe returns.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	logger  *slog.Logger
}

// New creates an empty registry. A nil logger falls back to [slog.Default].
func New[T any](logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry[T]{logger: logger}
}

// Subscribe registers a delivery function and returns its handle.
//
// The same function may be registered any number of times; each call
// creates an independent registration with its own handle.
func (r *Registry[T]) Subscribe(deliver func(T)) string {
	handle := uuid.NewString()

	r.mu.Lock()
	r.entries = append(r.entries, entry[T]{handle: handle, deliver: deliver})
	r.mu.Unlock()

	return handle
}

// Unsubscribe removes the registration with the given handle.
//
// Returns false if the handle is unknown or already removed; unsubscribing
// twice is a no-op, not an error.
func (r *Registry[T]) Unsubscribe(handle string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.handle == handle {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of active registrations.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Dispatch delivers payload to every registration in subscription order.
//
// Panicking deliveries are recovered and collected; the returned slice is
// nil when every delivery succeeded.
func (r *Registry[T]) Dispatch(payload T) []Failure {
	r.mu.RLock()
	snapshot := make([]entry[T], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.RUnlock()

	var failures []Failure
	for _, e := range snapshot {
		if f := r.deliverSafe(e, payload); f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}

// deliverSafe invokes one delivery function with panic recovery.
// Panics are logged with a correlation ID and the full stack trace.
func (r *Registry[T]) deliverSafe(e entry[T], payload T) (failure *Failure) {
	defer func() {
		if rec := recover(); rec != nil {
			correlationID := uuid.NewString()

			// log full context server-side for debugging
			r.logger.Error("observer panic",
				"correlation_id", correlationID,
				"handle", e.handle,
				"panic", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
			)

			failure = &Failure{
				Handle:        e.handle,
				CorrelationID: correlationID,
				Panic:         fmt.Sprintf("%v", rec),
			}
		}
	}()
	e.deliver(payload)
	return nil
}
