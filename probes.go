package ivfgo

import "github.com/hupe1980/ivfgo/planner"

// EstimateProbes estimates the number of lists a limited similarity scan
// must probe to satisfy its LIMIT.
//
// The estimate assumes tuples passing the non-index restrictions are spread
// uniformly across lists: the expected number of lists needed to accumulate
// limitTuples matches is the limit divided by the expected matches per list.
//
// A zero return means no estimate is possible (the query has no limit) and
// the caller should fall back to the configured probe count. The return
// value is deliberately not capped to [1, lists] or to max_probes; that
// clamping belongs to the cost model, which knows the session settings.
func EstimateProbes(limitTuples float64, conds []planner.RestrictInfo, lists int, tuples float64) int {
	// Cannot estimate without a limit. The limit includes any offset.
	if limitTuples < 0 {
		return 0
	}

	// Combined selectivity of the non-index conditions. Skip the default
	// inequality selectivity since it may be a distance filter, and skip
	// anything outside [0,1].
	selectivity := 1.0
	for _, cond := range conds {
		if cond.Selectivity >= 0 && cond.Selectivity <= 1 && cond.Selectivity != planner.DefaultInequalitySelectivity {
			selectivity *= cond.Selectivity
		}
	}

	tuplesPerList := tuples * selectivity / float64(lists)
	if tuplesPerList == 0 {
		// Empty relation or collapsed selectivity: no per-list estimate
		// is meaningful, probe everything.
		return lists
	}

	return int(limitTuples / tuplesPerList)
}
