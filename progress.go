package ivfgo

// BuildPhase identifies a phase of index construction for progress
// reporting.
type BuildPhase int64

const (
	// PhaseInitializing covers build setup before sampling starts.
	PhaseInitializing BuildPhase = iota + 1
	// PhaseKMeans covers centroid computation.
	PhaseKMeans
	// PhaseAssign covers assigning tuples to their nearest list.
	PhaseAssign
	// PhaseLoad covers writing tuples into list pages.
	PhaseLoad
)

// BuildPhaseName maps a build phase to its human-readable label. Unknown
// phases return "" and false.
func BuildPhaseName(phase BuildPhase) (string, bool) {
	switch phase {
	case PhaseInitializing:
		return "initializing", true
	case PhaseKMeans:
		return "performing k-means", true
	case PhaseAssign:
		return "assigning tuples", true
	case PhaseLoad:
		return "loading tuples", true
	default:
		return "", false
	}
}
