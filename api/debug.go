// Package api
// Author: momentics
//
// Live debug and introspection contract for buffers and their host process.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of registered probe values.
	DumpState() map[string]any

	// RegisterProbe registers a named probe; a later call with the same
	// name replaces the earlier one.
	RegisterProbe(name string, fn func() any)
}
