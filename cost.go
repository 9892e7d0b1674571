package ivfgo

import (
	"context"
	"fmt"

	"github.com/hupe1980/ivfgo/planner"
)

// EstimateCost estimates the cost of scanning the candidate index path.
//
// Paths without a similarity-ordering clause get infinite cost and zero
// selectivity so the planner silently discards them; that is the contract,
// not an error. A metadata failure is an error; costing cannot proceed
// without the list count.
//
// The call is pure apart from the metadata read: it holds no state between
// invocations and reads one settings snapshot.
func (am *AccessMethod) EstimateCost(ctx context.Context, root *planner.PlannerInfo, path *planner.IndexPath, loopCount float64) (planner.CostEstimate, error) {
	if path == nil || path.Index == nil {
		return planner.CostEstimate{}, ErrNoIndexInfo
	}

	// Never use the index without an order.
	if len(path.OrderBys) == 0 {
		return planner.Disable(), nil
	}

	settings := am.settings.Load()

	handle, err := am.metadata.Open(ctx, path.Index.Ref)
	if err != nil {
		return planner.CostEstimate{}, fmt.Errorf("ivfgo: opening metadata for %q: %w", path.Index.Ref, err)
	}
	defer handle.Close()

	lists := handle.Info().Lists

	// The planner's own statistics drive tuple scaling; the meta page
	// stands in when the planner has none (e.g. right after build).
	tuples := path.Index.Tuples
	if tuples == 0 {
		tuples = handle.Info().Tuples
	}

	// A nil root means no per-query planner state, in particular no limit.
	limitTuples := -1.0
	if root != nil {
		limitTuples = root.LimitTuples
	}

	probes := settings.Probes
	if settings.Streaming {
		if estimated := EstimateProbes(limitTuples, path.RestrictInfos, lists, tuples); estimated > probes {
			probes = estimated
		}
		if settings.MaxProbes != UnboundedMaxProbes && probes > settings.MaxProbes {
			probes = settings.MaxProbes
		}
	}

	// Ratio of lists the scan will visit.
	ratio := float64(probes) / float64(lists)
	if ratio > 1.0 {
		ratio = 1.0
	}

	// The subset of tuples to visit. The generic estimator turns it into
	// page counts and a baseline cost.
	costs := planner.GenericCosts{NumIndexTuples: tuples * ratio}
	if err := am.generic.Estimate(root, path, loopCount, &costs); err != nil {
		return planner.CostEstimate{}, fmt.Errorf("ivfgo: generic cost estimate: %w", err)
	}

	seqPageCost := path.Index.Tablespace.SeqPage
	if seqPageCost <= 0 {
		seqPageCost = planner.DefaultSeqPageCost
	}

	// Adjust the cost since TOAST is not included in the sequential scan
	// cost the baseline was calibrated against.
	if costs.NumIndexPages > path.Index.Rel.Pages && ratio < 0.5 {
		// Change all page cost from random to sequential.
		costs.IndexTotalCost -= costs.NumIndexPages * (costs.SpcRandomPageCost - seqPageCost)

		// Remove the cost of the extra pages.
		costs.IndexTotalCost -= (costs.NumIndexPages - path.Index.Rel.Pages) * seqPageCost
	} else {
		// Change some page cost from random to sequential.
		costs.IndexTotalCost -= 0.5 * costs.NumIndexPages * (costs.SpcRandomPageCost - seqPageCost)
	}

	// The list-visitation ratio bounds how much of the table the scan can
	// return, whatever the generic estimator derived from statistics.
	selectivity := costs.IndexSelectivity
	if ratio < selectivity {
		selectivity = ratio
	}

	am.logger.DebugContext(ctx, "estimated index scan cost",
		"index", string(path.Index.Ref),
		"lists", lists,
		"probes", probes,
		"ratio", ratio,
		"total_cost", costs.IndexTotalCost,
		"selectivity", selectivity,
	)

	// Most work happens before the first tuple is returned, so startup
	// cost equals total cost.
	return planner.CostEstimate{
		StartupCost: costs.IndexTotalCost,
		TotalCost:   costs.IndexTotalCost,
		Selectivity: selectivity,
		Correlation: costs.IndexCorrelation,
		Pages:       costs.NumIndexPages,
	}, nil
}
