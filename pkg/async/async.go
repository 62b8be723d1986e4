// Package async runs one-shot operations that may fail in the background and
// lets the caller wait for their single outcome.
package async

import (
	"context"
	"errors"
	"fmt"
)

// ErrPanic wraps a panic recovered from a task function.
var ErrPanic = errors.New("task panicked")

// Task is a single in-flight operation producing a T or an error. There is
// no retry; a Task completes exactly once.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn in its own goroutine. fn receives ctx and should honour it.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Run starts fn and waits for it.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return Go(ctx, fn).Wait(ctx)
}

// Wait blocks until the task finishes or ctx is done. Cancelling ctx stops
// the wait only; the task keeps running until fn returns.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed when the task has finished.
func (t *Task[T]) Done() <-chan struct{} { return t.done }
