// Package meta provides access to IVFFlat index metadata.
//
// Every planning call needs two numbers fixed by the build subsystem: how
// many inverted lists the index was partitioned into and how many tuples it
// holds. They live on the index's meta page. Provider is the scoped
// read-only handle contract the cost model consumes; implementations range
// from a static in-memory table (tests, embedded engines) to decoding the
// meta page out of a pagestore backend, with an optional caching layer that
// deduplicates concurrent fetches.
package meta
