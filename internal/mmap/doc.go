// Package mmap provides read-only memory-mapped file access.
//
// Index pages read during planning are small and immutable once written, so
// mapping them avoids a read syscall per planning call and lets concurrent
// sessions share the page cache.
//
//	m, err := mmap.Open("meta.page")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// On Unix platforms the package uses mmap(2) with madvise(2) hints; on
// Windows it uses CreateFileMapping/MapViewOfFile and access hints are a
// no-op.
package mmap
