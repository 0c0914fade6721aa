// File: ring/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CircularBuffer is an unbounded FIFO over an explicitly sized backing slice.
// Capacity need not be a power of two; the resize policy in Write doubles or
// halves it.

package ring

import (
	"context"
	"iter"
	"log/slog"

	"github.com/momentics/hioload-ring/api"
)

const (
	// DefaultCapacity is used by NewDefault.
	DefaultCapacity = 8
	// MinShrinkCapacity is the capacity a buffer must exceed before a Write
	// may halve it. The check is made against the pre-shrink capacity, so a
	// buffer created with 9..15 slots can end up below this value.
	MinShrinkCapacity = 8
)

// Ensure compile-time interface compliance.
var (
	_ api.Ring[any]     = (*CircularBuffer[any])(nil)
	_ api.RingStats     = (*CircularBuffer[any])(nil)
	_ api.Iterator[any] = (*Iterator[any])(nil)
)

// CircularBuffer is a growable FIFO ring buffer. Not safe for concurrent use.
type CircularBuffer[T any] struct {
	data []T
	head int // logical index of the oldest pending item
	tail int // logical index one past the newest pending item
	opts options
}

// New allocates a buffer with the given initial capacity.
func New[T any](capacity int, opts ...Option) (*CircularBuffer[T], error) {
	if capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidCapacity, "ring: capacity must be positive").
			WithContext("capacity", capacity)
	}
	b := &CircularBuffer[T]{
		data: make([]T, capacity),
		opts: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b, nil
}

// NewDefault allocates a buffer with DefaultCapacity slots.
func NewDefault[T any](opts ...Option) *CircularBuffer[T] {
	b, _ := New[T](DefaultCapacity, opts...)
	return b
}

// Size returns the number of pending items.
func (b *CircularBuffer[T]) Size() int {
	return b.tail - b.head
}

// Cap returns current backing capacity.
func (b *CircularBuffer[T]) Cap() int {
	return len(b.data)
}

// Write appends item, resizing storage beforehand if the policy asks for it.
func (b *CircularBuffer[T]) Write(item T) {
	b.resize()
	b.data[b.tail%len(b.data)] = item
	b.tail++
	if b.opts.observer != nil {
		b.opts.observer.OnWrite(b.Size(), len(b.data))
	}
}

// Read removes and returns the oldest item; ErrEmptyBuffer if none.
func (b *CircularBuffer[T]) Read() (T, error) {
	var zero T
	if b.tail <= b.head {
		if b.opts.observer != nil {
			b.opts.observer.OnError(api.ErrEmptyBuffer)
		}
		return zero, api.ErrEmptyBuffer
	}
	idx := b.head % len(b.data)
	item := b.data[idx]
	b.data[idx] = zero
	b.head++
	b.normalize()
	if b.opts.observer != nil {
		b.opts.observer.OnRead(b.Size(), len(b.data))
	}
	return item, nil
}

// Iterate returns a live iterator positioned at the oldest pending item.
func (b *CircularBuffer[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{buf: b, cursor: b.head}
}

// All returns a sequence over pending items, for use with range.
// Like Iterate it is a live view, not a snapshot.
func (b *CircularBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := b.Iterate()
		for it.HasNext() {
			v, err := it.Next()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// resize doubles storage when full and halves it when under a quarter full,
// copying the live window to the start of the new slice.
func (b *CircularBuffer[T]) resize() {
	size := b.Size()
	capacity := len(b.data)

	var next int
	switch {
	case size >= capacity:
		next = capacity * 2
	case size < capacity/4 && capacity > MinShrinkCapacity:
		next = capacity / 2
	default:
		return
	}

	data := make([]T, next)
	for i := 0; i < size; i++ {
		data[i] = b.data[(b.head+i)%capacity]
	}
	b.data = data
	b.head = 0
	b.tail = size

	if b.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		b.opts.logger.Debug("ring buffer resized", "from", capacity, "to", next, "size", size)
	}
	if b.opts.observer != nil {
		b.opts.observer.OnResize(capacity, next)
	}
}

// normalize rebases head and tail by whole multiples of capacity. Physical
// slots referenced by either cursor do not change.
func (b *CircularBuffer[T]) normalize() {
	capacity := len(b.data)
	offset := (b.head / capacity) * capacity
	b.head -= offset
	b.tail -= offset
}
