package planner

import (
	"errors"
	"math"
)

// GenericCosts mirrors the in/out parameter block of the host's generic
// index cost estimator. NumIndexTuples is an input when non-zero: the access
// method sets it to the corrected tuple-visitation figure before calling
// Estimate. All other fields are outputs.
type GenericCosts struct {
	// NumIndexTuples is the number of index entries the scan is expected
	// to visit.
	NumIndexTuples float64

	// NumIndexPages is the number of index pages the scan is expected to
	// touch.
	NumIndexPages float64

	IndexStartupCost float64
	IndexTotalCost   float64
	IndexSelectivity float64
	IndexCorrelation float64

	// SpcRandomPageCost is the random page cost the estimator priced
	// NumIndexPages at. The caller needs it to re-price pages.
	SpcRandomPageCost float64
}

// GenericCostEstimator is the host planner's shared baseline cost model for
// index access paths. The access method treats it as a black box.
type GenericCostEstimator interface {
	Estimate(root *PlannerInfo, path *IndexPath, loopCount float64, costs *GenericCosts) error
}

// CPUIndexTupleCost is the default per-entry CPU cost used by
// LinearEstimator.
const CPUIndexTupleCost = 0.005

// LinearEstimator is a reference GenericCostEstimator: pages scale linearly
// with the fraction of index entries visited and every page is priced at the
// tablespace's random page cost. It stands in for the host estimator in
// tests and embedded engines; a real host supplies its own.
type LinearEstimator struct{}

// Estimate fills costs from the tuple-visitation figure in
// costs.NumIndexTuples.
func (LinearEstimator) Estimate(root *PlannerInfo, path *IndexPath, loopCount float64, costs *GenericCosts) error {
	if path == nil || path.Index == nil {
		return errors.New("planner: index path without index info")
	}
	if loopCount <= 0 {
		loopCount = 1
	}

	idx := path.Index

	selectivity := 0.0
	if idx.Tuples > 0 {
		selectivity = costs.NumIndexTuples / idx.Tuples
	}
	if selectivity > 1 {
		selectivity = 1
	}

	randomPageCost := idx.Tablespace.RandomPage
	if randomPageCost <= 0 {
		randomPageCost = DefaultRandomPageCost
	}

	pages := math.Ceil(selectivity * idx.Pages)

	costs.NumIndexPages = pages
	costs.IndexSelectivity = selectivity
	costs.IndexCorrelation = 0
	costs.SpcRandomPageCost = randomPageCost
	costs.IndexStartupCost = 0
	costs.IndexTotalCost = pages*randomPageCost + costs.NumIndexTuples*CPUIndexTupleCost
	return nil
}

var _ GenericCostEstimator = LinearEstimator{}
