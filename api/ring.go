// Package api
// Author: momentics@gmail.com
//
// Growable FIFO ring buffer contracts.

package api

// Ring is a growable FIFO ring buffer contract.
// Implementations are not safe for concurrent use.
type Ring[T any] interface {
	// Write appends an item, growing storage when full. Never fails.
	Write(item T)
	// Read removes the oldest item, ErrEmptyBuffer if none is pending.
	Read() (T, error)
	// Size returns current number of pending items.
	Size() int
	// Cap returns current backing capacity.
	Cap() int
}

// Iterator walks a Ring without consuming it. Iterators are live views:
// writes and reads on the underlying Ring change what Next observes.
type Iterator[T any] interface {
	HasNext() bool
	Next() (T, error)
}

// RingStats is the read-only slice of Ring used by probes and metrics.
type RingStats interface {
	Size() int
	Cap() int
}

// RingObserver receives buffer events. All calls are made synchronously
// from the goroutine driving the buffer.
type RingObserver interface {
	OnWrite(size, capacity int)
	OnRead(size, capacity int)
	OnResize(from, to int)
	OnError(err error)
}
