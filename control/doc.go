// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics, and debug introspection layer for
// hioload-ring buffers.
//
// Provides concurrent-safe state handling primitives including:
//   - YAML-backed ring configuration with validation and reload listeners
//   - Prometheus metrics fed by api.RingObserver
//   - Debug probes for buffer and platform state
//
// The primitives here are safe for concurrent use; the buffers they observe
// are not. Observers are called from the goroutine driving the buffer.
package control
