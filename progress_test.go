package ivfgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPhaseName(t *testing.T) {
	tests := []struct {
		phase BuildPhase
		want  string
	}{
		{PhaseInitializing, "initializing"},
		{PhaseKMeans, "performing k-means"},
		{PhaseAssign, "assigning tuples"},
		{PhaseLoad, "loading tuples"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := BuildPhaseName(tt.phase)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPhaseNameUnknown(t *testing.T) {
	for _, phase := range []BuildPhase{0, 5, -1, 42} {
		got, ok := BuildPhaseName(phase)
		assert.False(t, ok)
		assert.Empty(t, got)
	}
}
