// Package ring
// Author: momentics <momentics@gmail.com>
//
// Growable FIFO circular buffer with explicit doubling/halving and a live
// iteration view.
//
// CircularBuffer keeps two logical cursors, head and tail, over a fixed-size
// backing slice; logical index i lives at physical slot i % Cap(). Storage
// doubles when a Write finds the buffer full and halves when a Write finds it
// less than a quarter full (only while capacity exceeds MinShrinkCapacity).
// Each Read rebases both cursors by whole multiples of capacity so they stay
// bounded on long-lived buffers.
//
// Iterators are not snapshots. They re-read the buffer's tail and capacity on
// every call, so interleaved writes and reads change what they observe.
//
// Nothing in this package is safe for concurrent use; callers serialize.
package ring
