package ivfgo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DefaultProbes, s.Probes)
	assert.Equal(t, UnboundedMaxProbes, s.MaxProbes)
	assert.Equal(t, DefaultStreaming, s.Streaming)
	require.NoError(t, s.Validate())
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"defaults", DefaultSettings(), false},
		{"max probes bounded", Settings{Probes: 10, MaxProbes: 100}, false},
		{"probes at min", Settings{Probes: MinLists, MaxProbes: UnboundedMaxProbes}, false},
		{"probes at max", Settings{Probes: MaxLists, MaxProbes: UnboundedMaxProbes}, false},
		{"probes zero", Settings{Probes: 0, MaxProbes: UnboundedMaxProbes}, true},
		{"probes too high", Settings{Probes: MaxLists + 1, MaxProbes: UnboundedMaxProbes}, true},
		{"max probes zero", Settings{Probes: 1, MaxProbes: 0}, true},
		{"max probes too high", Settings{Probes: 1, MaxProbes: MaxLists + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				var oor *OutOfRangeError
				require.ErrorAs(t, err, &oor)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSettingsVarSetters(t *testing.T) {
	sv := NewSettingsVar()

	require.NoError(t, sv.SetProbes(10))
	require.NoError(t, sv.SetMaxProbes(20))
	require.NoError(t, sv.SetStreaming(true))

	s := sv.Load()
	assert.Equal(t, 10, s.Probes)
	assert.Equal(t, 20, s.MaxProbes)
	assert.True(t, s.Streaming)

	// Rejected values leave the snapshot untouched.
	require.Error(t, sv.SetProbes(0))
	require.Error(t, sv.SetMaxProbes(MaxLists+1))
	assert.Equal(t, s, sv.Load())

	require.NoError(t, sv.SetMaxProbes(UnboundedMaxProbes))
	assert.Equal(t, UnboundedMaxProbes, sv.Load().MaxProbes)
}

func TestSettingsVarStore(t *testing.T) {
	sv := NewSettingsVar()

	require.Error(t, sv.Store(Settings{Probes: -5, MaxProbes: UnboundedMaxProbes}))
	require.NoError(t, sv.Store(Settings{Probes: 7, MaxProbes: 7, Streaming: true}))
	assert.Equal(t, 7, sv.Load().Probes)
}

func TestSettingsVarConcurrentUpdates(t *testing.T) {
	sv := NewSettingsVar()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NoError(t, sv.SetProbes(n))
				assert.NoError(t, sv.SetStreaming(j%2 == 0))
				s := sv.Load()
				assert.NoError(t, s.Validate())
			}
		}(i)
	}
	wg.Wait()
}
