package adapters_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/adapters"
	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
)

func newAdapter(t *testing.T, logs *bytes.Buffer) *adapters.ControlAdapter {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := control.DefaultRingConfig()
	cfg.MetricsNamespace = "adaptertest"
	ctrl, err := adapters.NewControlAdapter(cfg, logger)
	require.NoError(t, err)
	return ctrl
}

func TestControlAdapterBasic(t *testing.T) {
	var logs bytes.Buffer
	ctrl := newAdapter(t, &logs)

	cfg := ctrl.GetConfig()
	assert.Equal(t, 8, cfg["initial_capacity"])

	called := false
	ctrl.OnReload(func() { called = true })
	require.NoError(t, ctrl.SetConfig(map[string]any{"initial_capacity": 2}))
	assert.True(t, called, "reload hook not called")
	assert.Equal(t, 2, ctrl.Config().InitialCapacity)

	err := ctrl.SetConfig(map[string]any{"initial_capacity": 0})
	assert.ErrorIs(t, err, api.ErrInvalidCapacity)
	assert.Contains(t, logs.String(), "config update rejected")
}

func TestNewControlAdapter_InvalidConfig(t *testing.T) {
	cfg := control.DefaultRingConfig()
	cfg.InitialCapacity = 0
	_, err := adapters.NewControlAdapter(cfg, nil)
	assert.ErrorIs(t, err, api.ErrInvalidCapacity)
}

func TestNewControlAdapter_InvalidNamespaceReturnsError(t *testing.T) {
	cfg, err := control.ParseRingConfig([]byte("name: q\n"))
	require.NoError(t, err)
	cfg.MetricsNamespace = "my-app"

	var ctrl *adapters.ControlAdapter
	require.NotPanics(t, func() {
		ctrl, err = adapters.NewControlAdapter(cfg, nil)
	})
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Nil(t, ctrl)
}

func TestNewRing_WiresMetricsProbesAndLogs(t *testing.T) {
	var logs bytes.Buffer
	ctrl := newAdapter(t, &logs)
	require.NoError(t, ctrl.SetConfig(map[string]any{"initial_capacity": 2}))

	buf, err := adapters.NewRing[string](ctrl, "events")
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Cap())

	for _, s := range []string{"a", "b", "c"} {
		buf.Write(s)
	}

	stats := ctrl.Stats()
	assert.Equal(t, 3, stats["events.size"])
	assert.Equal(t, 4, stats["events.capacity"])
	assert.Equal(t, 1, stats["events.grows"])
	assert.Equal(t, map[string]int{"size": 3, "capacity": 4}, stats["debug.ring.events"])
	assert.Contains(t, stats, "debug.platform.cpus")

	out := logs.String()
	assert.Contains(t, out, "ring buffer attached")
	assert.Contains(t, out, "ring buffer resized")
	assert.Contains(t, out, "buffer=events")
}

func TestControlAdapter_RegisterDebugProbe(t *testing.T) {
	var logs bytes.Buffer
	ctrl := newAdapter(t, &logs)
	ctrl.RegisterDebugProbe("custom", func() any { return "ok" })
	assert.Equal(t, "ok", ctrl.Stats()["debug.custom"])
}
