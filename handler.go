package ivfgo

import (
	"context"

	"github.com/hupe1980/ivfgo/meta"
	"github.com/hupe1980/ivfgo/planner"
)

// VacuumOptions are the parallel-vacuum operations the access method
// supports.
type VacuumOptions uint8

const (
	// VacuumParallelBulkDelete allows bulk-delete to run in a parallel
	// vacuum worker.
	VacuumParallelBulkDelete VacuumOptions = 1 << iota
	// VacuumParallelCleanup allows cleanup to run in a parallel vacuum
	// worker.
	VacuumParallelCleanup
)

// Scan is one similarity scan over the index. The execution engine decides
// which lists to visit from the probe count it was given at BeginScan.
type Scan interface {
	// Rescan restarts the scan with a new query vector.
	Rescan(query []float32) error

	// Next returns the next candidate tuple in distance order.
	Next(ctx context.Context) (tid uint64, ok bool, err error)

	// Close ends the scan.
	Close() error
}

// Hooks are the execution entry points the embedding engine supplies.
// Build, maintenance, and scanning are out of this layer's hands; the
// capability table only wires them through to the host.
type Hooks struct {
	Build         func(ctx context.Context, ref meta.Ref, opts IndexOptions) error
	BuildEmpty    func(ctx context.Context, ref meta.Ref) error
	Insert        func(ctx context.Context, ref meta.Ref, vector []float32, tid uint64) error
	BulkDelete    func(ctx context.Context, ref meta.Ref, deletable func(tid uint64) bool) error
	VacuumCleanup func(ctx context.Context, ref meta.Ref) error
	BeginScan     func(ctx context.Context, ref meta.Ref, query []float32, probes int) (Scan, error)
}

// Routine is the access method's capability table: a static declaration of
// what the method can do plus its bound entry points. The host registers it
// once and never mutates it.
type Routine struct {
	// Support-procedure surface.
	Strategies  int
	Support     int
	OptsProcNum int

	// Capabilities.
	CanOrder              bool
	CanOrderByOp          bool
	CanBackward           bool
	CanUnique             bool
	CanMultiCol           bool
	OptionalKey           bool
	SearchArray           bool
	SearchNulls           bool
	Storage               bool
	Clusterable           bool
	PredLocks             bool
	CanParallel           bool
	CanBuildParallel      bool
	CanInclude            bool
	UseMaintenanceWorkMem bool
	Summarizing           bool
	CanReturn             bool
	ParallelVacuum        VacuumOptions

	// Planning entry points, bound to the AccessMethod.
	CostEstimate   func(ctx context.Context, root *planner.PlannerInfo, path *planner.IndexPath, loopCount float64) (planner.CostEstimate, error)
	Options        func(raw map[string]string, validate bool) (IndexOptions, error)
	Validate       func(opClass string) bool
	BuildPhaseName func(phase BuildPhase) (string, bool)

	// Execution entry points, supplied by the engine.
	Hooks Hooks
}

// Routine builds the capability table for this access method.
func (am *AccessMethod) Routine(hooks Hooks) *Routine {
	return &Routine{
		Strategies:  0,
		Support:     5,
		OptsProcNum: 0,

		CanOrder:     false,
		CanOrderByOp: true,
		// Cannot change direction mid-scan.
		CanBackward:           false,
		CanUnique:             false,
		CanMultiCol:           false,
		OptionalKey:           true,
		SearchArray:           false,
		SearchNulls:           false,
		Storage:               false,
		Clusterable:           false,
		PredLocks:             false,
		CanParallel:           false,
		CanBuildParallel:      true,
		CanInclude:            false,
		UseMaintenanceWorkMem: false,
		Summarizing:           false,
		// Tuples are not included in the heap sort.
		CanReturn:      false,
		ParallelVacuum: VacuumParallelBulkDelete,

		CostEstimate:   am.EstimateCost,
		Options:        ParseIndexOptions,
		Validate:       am.Validate,
		BuildPhaseName: BuildPhaseName,

		Hooks: hooks,
	}
}
