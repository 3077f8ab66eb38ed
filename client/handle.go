package client

import (
	"context"
	"sync/atomic"
)

// HandleState is the observable state of an in-flight request.
type HandleState int32

const (
	HandlePending HandleState = iota
	HandleSettled
	HandleCancelled
)

func (s HandleState) String() string {
	switch s {
	case HandlePending:
		return "pending"
	case HandleSettled:
		return "settled"
	case HandleCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle represents an in-flight or completed request. The caller
// exclusively owns the handle; no request logic retains it after
// settlement.
type Handle[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	state  atomic.Int32

	res *Result[T]
	err error
}

// Done returns a channel that is closed when the request reaches a
// terminal state.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

// State reports whether the request is pending, settled, or cancelled.
func (h *Handle[T]) State() HandleState { return HandleState(h.state.Load()) }

// Wait blocks until the request is terminal and returns its result.
// A cancelled request reports context.Canceled and no result.
func (h *Handle[T]) Wait() (*Result[T], error) {
	<-h.done
	return h.res, h.err
}

// Cancel requests cancellation of a pending request. The underlying
// transport is signalled through its context; a settlement arriving
// after cancellation is dropped, never observed through the handle.
// Cancelling a settled or already-cancelled handle is a no-op.
func (h *Handle[T]) Cancel() {
	if h.state.CompareAndSwap(int32(HandlePending), int32(HandleCancelled)) {
		h.cancel()
	}
}

// SafeCancel cancels h if it is still pending and always returns nil,
// the cleared sentinel, so callers can unconditionally overwrite their
// stored handle reference:
//
//	h = client.SafeCancel(h)
//
// A nil, settled, or already-cancelled handle is a safe no-op.
func SafeCancel[T any](h *Handle[T]) *Handle[T] {
	if h != nil {
		h.Cancel()
	}
	return nil
}

// start launches fn in its own goroutine and returns a Handle for it.
// The handle carries its own CancelFunc derived from ctx. fn receives
// a release func and must arrange for it to run once no work depends
// on the request context anymore; a download's body may legitimately
// outlive fn itself, so start cannot tear the context down on return.
func start[T any](ctx context.Context, fn func(ctx context.Context, release context.CancelFunc) (*Result[T], error)) *Handle[T] {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(h.done)

		res, err := fn(ctx, cancel)
		if !h.state.CompareAndSwap(int32(HandlePending), int32(HandleSettled)) {
			// Cancelled while running; drop the settlement. Cancel may
			// not have signalled the context yet at this point, so
			// report the cancellation directly instead of reading it
			// off ctx.
			h.err = context.Canceled
			return
		}

		h.res, h.err = res, err
		if err != nil {
			cancel()
		}
	}()

	return h
}
