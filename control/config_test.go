package control

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-ring/api"
)

func TestParseRingConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    RingConfig
		wantErr error
	}{
		{
			name: "empty_uses_defaults",
			yaml: "",
			want: DefaultRingConfig(),
		},
		{
			name: "override_capacity",
			yaml: "initial_capacity: 32\n",
			want: RingConfig{Name: "default", InitialCapacity: 32, MetricsNamespace: "hioload"},
		},
		{
			name: "full",
			yaml: "name: ingest\ninitial_capacity: 10\nmetrics_namespace: app\n",
			want: RingConfig{Name: "ingest", InitialCapacity: 10, MetricsNamespace: "app"},
		},
		{
			name:    "zero_capacity",
			yaml:    "initial_capacity: 0\n",
			wantErr: api.ErrInvalidCapacity,
		},
		{
			name:    "namespace_with_dash",
			yaml:    "name: q\nmetrics_namespace: my-app\n",
			wantErr: api.ErrInvalidArgument,
		},
		{
			name: "empty_namespace",
			yaml: "metrics_namespace: \"\"\n",
			want: RingConfig{Name: "default", InitialCapacity: 8},
		},
		{
			name: "namespace_with_colon",
			yaml: "metrics_namespace: app:ring\n",
			want: RingConfig{Name: "default", InitialCapacity: 8, MetricsNamespace: "app:ring"},
		},
		{
			name:    "blank_name",
			yaml:    "name: \"\"\n",
			wantErr: api.ErrInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRingConfig([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRingConfig_UnknownField(t *testing.T) {
	_, err := ParseRingConfig([]byte("capacity: 4\n"))
	assert.Error(t, err)
}

func TestLoadRingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: events\ninitial_capacity: 64\n"), 0o600))

	cfg, err := LoadRingConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "events", cfg.Name)
	assert.Equal(t, 64, cfg.InitialCapacity)

	_, err = LoadRingConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewBuffer(t *testing.T) {
	cfg := DefaultRingConfig()
	cfg.InitialCapacity = 3
	b, err := NewBuffer[string](cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Cap())

	cfg.InitialCapacity = 0
	_, err = NewBuffer[string](cfg)
	assert.ErrorIs(t, err, api.ErrInvalidCapacity)
}

func TestConfigStore_SetConfigMerges(t *testing.T) {
	cs := NewConfigStore()
	reloads := 0
	cs.OnReload(func() { reloads++ })

	require.NoError(t, cs.SetConfig(map[string]any{"initial_capacity": 16}))
	assert.Equal(t, 1, reloads)
	snap := cs.GetSnapshot()
	assert.Equal(t, 16, snap["initial_capacity"])
	assert.Equal(t, "default", snap["name"])
}

func TestConfigStore_RejectsInvalidAtomically(t *testing.T) {
	cs := NewConfigStore()
	reloads := 0
	cs.OnReload(func() { reloads++ })

	err := cs.SetConfig(map[string]any{"name": "x", "initial_capacity": -1})
	assert.ErrorIs(t, err, api.ErrInvalidCapacity)
	assert.Equal(t, DefaultRingConfig(), cs.Snapshot())
	assert.Zero(t, reloads)

	err = cs.SetConfig(map[string]any{"bogus": true})
	assert.Error(t, err)
	assert.Equal(t, DefaultRingConfig(), cs.Snapshot())
}

func TestConfigStore_ListenersSeeAppliedOrder(t *testing.T) {
	cs := NewConfigStore()

	var seen []int
	cs.OnReload(func() {
		seen = append(seen, cs.Snapshot().InitialCapacity)
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cfg := DefaultRingConfig()
			cfg.InitialCapacity = n
			assert.NoError(t, cs.Set(cfg))
		}(i)
	}
	wg.Wait()

	require.Len(t, seen, 50)
	// Each notification observes the change it announces, so every value
	// appears exactly once and the last one is what the store holds.
	unique := make(map[int]bool, len(seen))
	for _, v := range seen {
		require.False(t, unique[v], "capacity %d notified twice", v)
		unique[v] = true
	}
	assert.Equal(t, cs.Snapshot().InitialCapacity, seen[len(seen)-1])
}
