// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Ring buffer configuration: YAML loading, validation, and a thread-safe
// store with reload propagation.

package control

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/ring"
)

// RingConfig describes how a buffer is built and reported.
type RingConfig struct {
	Name             string `yaml:"name"`
	InitialCapacity  int    `yaml:"initial_capacity"`
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// DefaultRingConfig returns the configuration used when nothing is loaded.
func DefaultRingConfig() RingConfig {
	return RingConfig{
		Name:             "default",
		InitialCapacity:  ring.DefaultCapacity,
		MetricsNamespace: "hioload",
	}
}

// metricNamespaceRE is the Prometheus metric name rule; the namespace
// prefixes every collector name.
var metricNamespaceRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Validate checks the configuration for values New or NewMetricsRegistry
// would reject.
func (c RingConfig) Validate() error {
	if c.Name == "" {
		return api.NewError(api.ErrCodeInvalidArgument, "config: name is required")
	}
	if c.InitialCapacity <= 0 {
		return api.NewError(api.ErrCodeInvalidCapacity, "config: initial_capacity must be positive").
			WithContext("initial_capacity", c.InitialCapacity)
	}
	if c.MetricsNamespace != "" && !metricNamespaceRE.MatchString(c.MetricsNamespace) {
		return api.NewError(api.ErrCodeInvalidArgument, "config: metrics_namespace is not a valid Prometheus name").
			WithContext("metrics_namespace", c.MetricsNamespace)
	}
	return nil
}

// ParseRingConfig decodes YAML over the defaults. Unknown keys are rejected.
func ParseRingConfig(data []byte) (RingConfig, error) {
	cfg := DefaultRingConfig()
	if err := decodeInto(&cfg, data); err != nil {
		return RingConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RingConfig{}, err
	}
	return cfg, nil
}

// LoadRingConfig reads and parses a YAML file.
func LoadRingConfig(path string) (RingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RingConfig{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseRingConfig(data)
}

// NewBuffer builds a buffer sized from cfg.
func NewBuffer[T any](cfg RingConfig, opts ...ring.Option) (*ring.CircularBuffer[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return ring.New[T](cfg.InitialCapacity, opts...)
}

func decodeInto(cfg *RingConfig, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ConfigStore holds the active RingConfig with snapshot reads and listener
// support.
type ConfigStore struct {
	reloadMu  sync.Mutex // serializes apply+notify so listeners see changes in order
	mu        sync.RWMutex
	config    RingConfig
	listeners []func()
}

// NewConfigStore initializes a store with DefaultRingConfig.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    DefaultRingConfig(),
		listeners: make([]func(), 0),
	}
}

// Snapshot returns a copy of the active configuration.
func (cs *ConfigStore) Snapshot() RingConfig {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config
}

// Set replaces the configuration if it validates, then notifies listeners.
// Concurrent Set calls are applied and notified one at a time, so listeners
// observe reloads in the order the changes were applied. Listeners must not
// call Set or SetConfig themselves.
func (cs *ConfigStore) Set(cfg RingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.reloadMu.Lock()
	defer cs.reloadMu.Unlock()
	cs.mu.Lock()
	cs.config = cfg
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()
	dispatchReload(listeners)
	return nil
}

// GetSnapshot returns the configuration keyed by its YAML names.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cfg := cs.Snapshot()
	return map[string]any{
		"name":              cfg.Name,
		"initial_capacity":  cfg.InitialCapacity,
		"metrics_namespace": cfg.MetricsNamespace,
	}
}

// SetConfig merges values keyed by YAML name into the active configuration.
// The merge is all-or-nothing: on any error the store is unchanged.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) error {
	raw, err := yaml.Marshal(newCfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	cfg := cs.Snapshot()
	if err := decodeInto(&cfg, raw); err != nil {
		return err
	}
	return cs.Set(cfg)
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes listeners synchronously, outside the store lock.
func dispatchReload(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
