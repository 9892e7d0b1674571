// Package pagestore abstracts where index pages live.
//
// The planning layer only ever reads one page per index (the meta page), but
// that page may sit on a local filesystem, in memory, or in object storage
// next to the index segments. Store is the smallest interface that covers
// those cases; the meta package layers decoding on top of it.
//
// Backends:
//
//   - Local: filesystem directory, memory-mapped reads
//   - Memory: map-backed, for tests and embedded engines
//   - s3.Store: Amazon S3 (see pagestore/s3)
//   - minio.Store: MinIO and S3-compatible endpoints (see pagestore/minio)
//
// Throttled wraps any Store with a rate limit so plan storms do not hammer
// remote backends.
package pagestore
