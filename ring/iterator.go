// File: ring/iterator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "github.com/momentics/hioload-ring/api"

// Iterator is a live cursor over a CircularBuffer. It never mutates the
// buffer and re-reads tail and capacity on every call, so it is not a
// snapshot: reads, writes or resizes made while iterating change what
// subsequent Next calls return. Results in that case are unspecified but
// always index within the current backing slice.
type Iterator[T any] struct {
	buf    *CircularBuffer[T]
	cursor int
}

// HasNext reports whether the cursor is behind the buffer's current tail.
func (it *Iterator[T]) HasNext() bool {
	return it.cursor < it.buf.tail
}

// Next returns the item under the cursor and advances it.
func (it *Iterator[T]) Next() (T, error) {
	if it.cursor >= it.buf.tail {
		var zero T
		return zero, api.ErrIterationExhausted
	}
	item := it.buf.data[it.cursor%len(it.buf.data)]
	it.cursor++
	return item, nil
}

