// Package ivfgo implements the planning and registration layer of an
// IVFFlat approximate-nearest-neighbor index access method.
//
// An IVFFlat index partitions vectors into inverted lists around k-means
// centroids; a similarity scan probes the lists nearest the query. This
// package decides how expensive such a scan looks to the host query planner:
// it estimates how many lists a LIMIT query needs to probe, converts the
// probe count into page-access costs, and declares the access method's
// capabilities and tunables to the host.
//
// # Quick start
//
//	provider := meta.NewStaticProvider()
//	provider.Register("items_embedding", meta.MetaPageInfo{Lists: 100, Tuples: 1_000_000})
//
//	am, _ := ivfgo.New(provider)
//	am.Settings().SetStreaming(true)
//
//	est, err := am.EstimateCost(ctx, root, path, 1)
//
// Index build, inserts, vacuum, and scan execution live in the execution
// engine; they plug into the capability table as hooks (see Routine).
//
// # Tunables
//
// Three session-scoped settings steer probing, mirroring the ivfflat.probes,
// ivfflat.max_probes, and ivfflat.streaming GUCs:
//
//   - probes: the floor on lists visited per scan (default 1)
//   - max probes: upper clamp on adaptively estimated probes (default
//     unbounded)
//   - streaming: enables limit-aware probe estimation
//
// The lists count itself is a build-time index option (IndexOptions) and is
// immutable afterward.
package ivfgo
