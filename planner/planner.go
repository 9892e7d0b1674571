package planner

import (
	"math"

	"github.com/hupe1980/ivfgo/meta"
)

// DefaultInequalitySelectivity is the host planner's placeholder selectivity
// for inequality predicates it has no statistics for. A restriction carrying
// exactly this value may in fact be the distance filter the index ordering
// already accounts for, so probe estimation must not multiply it in.
const DefaultInequalitySelectivity = 0.3333333333333333

// Default page costs, matching the host's seq_page_cost/random_page_cost
// defaults.
const (
	DefaultSeqPageCost    = 1.0
	DefaultRandomPageCost = 4.0
)

// PlannerInfo carries the per-query planner state the access method reads.
type PlannerInfo struct {
	// LimitTuples is the LIMIT bound of the query including any OFFSET.
	// Negative means the query has no limit.
	LimitTuples float64
}

// HasLimit reports whether the query carries a usable LIMIT bound.
func (pi *PlannerInfo) HasLimit() bool {
	return pi.LimitTuples >= 0
}

// RestrictInfo is one restriction clause attached to the indexed relation,
// reduced to its normalized selectivity.
type RestrictInfo struct {
	// Selectivity is the fraction of rows expected to satisfy the clause,
	// in [0,1]. Values outside that range mean the planner could not
	// produce a usable estimate.
	Selectivity float64
}

// OrderBy is an ORDER BY <column> <distance-op> <value> clause the index can
// satisfy.
type OrderBy struct {
	// Operator is the distance operator name (e.g. "<->").
	Operator string
}

// TablespaceCosts are the per-page access costs of the tablespace the index
// lives in.
type TablespaceCosts struct {
	RandomPage float64
	SeqPage    float64
}

// DefaultTablespaceCosts returns the host defaults.
func DefaultTablespaceCosts() TablespaceCosts {
	return TablespaceCosts{
		RandomPage: DefaultRandomPageCost,
		SeqPage:    DefaultSeqPageCost,
	}
}

// RelStats are the statistics of the indexed relation (the heap).
type RelStats struct {
	// Pages is the total page count of the relation.
	Pages float64
}

// IndexInfo describes the candidate index to the cost model.
type IndexInfo struct {
	// Ref identifies the index for metadata lookup.
	Ref meta.Ref

	// Tuples is the estimated number of entries in the index.
	Tuples float64

	// Pages is the estimated page count of the index.
	Pages float64

	// Rel holds statistics of the indexed relation.
	Rel RelStats

	// Tablespace holds the page costs of the index's tablespace.
	Tablespace TablespaceCosts
}

// IndexPath is one candidate access path using this index.
type IndexPath struct {
	Index *IndexInfo

	// OrderBys are the similarity-ordering clauses the path satisfies.
	// Empty means the path is unordered and useless for this index.
	OrderBys []OrderBy

	// RestrictInfos are the restriction clauses on the indexed relation.
	RestrictInfos []RestrictInfo
}

// CostEstimate is the output contract consumed by the host planner.
type CostEstimate struct {
	StartupCost float64
	TotalCost   float64
	Selectivity float64
	Correlation float64
	Pages       float64
}

// Disable is the estimate for a path that must never be chosen.
func Disable() CostEstimate {
	return CostEstimate{
		StartupCost: math.Inf(1),
		TotalCost:   math.Inf(1),
	}
}
