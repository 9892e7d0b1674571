package ivfgo

import (
	"testing"

	"github.com/hupe1980/ivfgo/planner"
	"github.com/stretchr/testify/assert"
)

func TestEstimateProbesNoLimit(t *testing.T) {
	for _, lists := range []int{1, 10, 100, MaxLists} {
		assert.Equal(t, 0, EstimateProbes(-1, nil, lists, 1_000_000), "lists=%d", lists)
	}
}

func TestEstimateProbesZeroTuplesPerList(t *testing.T) {
	// Empty relation: probe everything.
	assert.Equal(t, 100, EstimateProbes(10, nil, 100, 0))

	// Collapsed selectivity has the same effect.
	conds := []planner.RestrictInfo{{Selectivity: 0}}
	assert.Equal(t, 50, EstimateProbes(10, conds, 50, 1_000_000))
}

func TestEstimateProbesExpectation(t *testing.T) {
	// 1,000,000 tuples over 100 lists = 10,000 per list; a LIMIT 10 needs
	// well under one list.
	assert.Equal(t, 0, EstimateProbes(10, nil, 100, 1_000_000))

	// LIMIT 25,000 over the same layout needs 2.5 lists, truncated.
	assert.Equal(t, 2, EstimateProbes(25_000, nil, 100, 1_000_000))
}

func TestEstimateProbesSelectivityProduct(t *testing.T) {
	conds := []planner.RestrictInfo{
		{Selectivity: 0.5},
		{Selectivity: 0.1},
	}
	// 1,000,000 * 0.05 / 100 = 500 matches per list; LIMIT 5,000 needs 10.
	assert.Equal(t, 10, EstimateProbes(5_000, conds, 100, 1_000_000))
}

func TestEstimateProbesSkipsDefaultInequalitySelectivity(t *testing.T) {
	with := []planner.RestrictInfo{
		{Selectivity: 0.5},
		{Selectivity: planner.DefaultInequalitySelectivity},
	}
	without := []planner.RestrictInfo{
		{Selectivity: 0.5},
	}

	// The sentinel contributes nothing to the product.
	assert.Equal(t,
		EstimateProbes(5_000, without, 100, 1_000_000),
		EstimateProbes(5_000, with, 100, 1_000_000),
	)

	// A nearby non-sentinel value does.
	near := []planner.RestrictInfo{
		{Selectivity: 0.5},
		{Selectivity: 0.3333},
	}
	assert.NotEqual(t,
		EstimateProbes(5_000, without, 100, 1_000_000),
		EstimateProbes(5_000, near, 100, 1_000_000),
	)
}

func TestEstimateProbesSkipsOutOfRangeSelectivity(t *testing.T) {
	conds := []planner.RestrictInfo{
		{Selectivity: -0.1},
		{Selectivity: 1.5},
		{Selectivity: 0.5},
	}
	want := EstimateProbes(5_000, []planner.RestrictInfo{{Selectivity: 0.5}}, 100, 1_000_000)
	assert.Equal(t, want, EstimateProbes(5_000, conds, 100, 1_000_000))
}

func TestEstimateProbesUncapped(t *testing.T) {
	// 100 tuples over 10 lists = 10 per list; LIMIT 10,000 wants 1,000
	// probes. The estimator does not cap; the cost model clamps.
	assert.Equal(t, 1_000, EstimateProbes(10_000, nil, 10, 100))
}
