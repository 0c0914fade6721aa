// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages ring configuration, metrics and debug probes.
// Config maps are keyed by the YAML field names of the ring configuration.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error
	Stats() map[string]any
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
	// Observer returns the metrics observer for the named buffer.
	Observer(name string) RingObserver
	// Attach registers debug probes for a buffer.
	Attach(name string, r RingStats)
}
