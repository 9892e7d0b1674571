// Package planner defines the boundary types exchanged with the host query
// planner.
//
// The host hands the access method a candidate index path plus per-query
// planner state; the access method hands back a CostEstimate the planner
// compares against competing paths. None of these values outlive a single
// planning call.
//
// The GenericCostEstimator is the host's shared baseline cost model for
// index access paths. The IVFFlat cost model does not replace it: it feeds
// it a corrected tuple-visitation figure and then adjusts the result for
// partition-local access patterns.
package planner
