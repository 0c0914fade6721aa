// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control using control package primitives.

package adapters

import (
	"log/slog"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/ring"
)

// Ensure compile-time interface compliance.
var _ api.Control = (*ControlAdapter)(nil)

// ControlAdapter bundles configuration, metrics and debug probes behind
// api.Control.
type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
	logger  *slog.Logger
}

// NewControlAdapter builds an adapter whose store starts from cfg. Metrics
// are registered under cfg.MetricsNamespace.
func NewControlAdapter(cfg control.RingConfig, logger *slog.Logger) (*ControlAdapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store := control.NewConfigStore()
	if err := store.Set(cfg); err != nil {
		return nil, err
	}
	adapter := &ControlAdapter{
		config:  store,
		metrics: control.NewMetricsRegistry(cfg.MetricsNamespace),
		debug:   control.NewDebugProbes(),
		logger:  logger,
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter, nil
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	if err := c.config.SetConfig(cfg); err != nil {
		c.logger.Warn("config update rejected", "error", err)
		return err
	}
	c.logger.Info("config updated", "keys", len(cfg))
	return nil
}

// Config returns the typed active configuration.
func (c *ControlAdapter) Config() control.RingConfig {
	return c.config.Snapshot()
}

// Metrics exposes the registry, e.g. for serving Handler().
func (c *ControlAdapter) Metrics() *control.MetricsRegistry {
	return c.metrics
}

func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

func (c *ControlAdapter) Observer(name string) api.RingObserver {
	return c.metrics.Observer(name)
}

func (c *ControlAdapter) Attach(name string, r api.RingStats) {
	c.debug.RegisterRingProbe(name, r)
	c.logger.Info("ring buffer attached", "buffer", name, "capacity", r.Cap())
}

// NewRing builds a buffer from the adapter's active configuration, wires its
// metrics observer and logger, and registers its debug probe.
func NewRing[T any](c *ControlAdapter, name string, opts ...ring.Option) (*ring.CircularBuffer[T], error) {
	opts = append([]ring.Option{
		ring.WithLogger(c.logger.With("buffer", name)),
		ring.WithObserver(c.Observer(name)),
	}, opts...)
	buf, err := control.NewBuffer[T](c.Config(), opts...)
	if err != nil {
		return nil, err
	}
	c.Attach(name, buf)
	return buf, nil
}
