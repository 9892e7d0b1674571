package meta

import (
	"context"
	"errors"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrNotFound is returned when no metadata exists for an index.
var ErrNotFound = errors.New("meta: index metadata not found")

// Ref identifies an index to a Provider. The host assigns it; this layer
// treats it as opaque.
type Ref string

// MetaPageInfo is the decoded content of an index meta page.
type MetaPageInfo struct {
	// Lists is the number of inverted lists the index was built with.
	// Fixed at build time.
	Lists int

	// Tuples is the number of tuples stored in the index, maintained by
	// insert and vacuum.
	Tuples float64

	// EmptyLists marks lists that currently hold no tuples. Vacuum
	// maintains it; scans use it to skip dead partitions. Estimation
	// ignores it. May be nil.
	EmptyLists *roaring.Bitmap

	// ListTuples holds per-list tuple counts when the build recorded
	// them. len(ListTuples) == Lists when present; nil otherwise.
	ListTuples []uint32
}

// Handle is a scoped read handle on index metadata. It must be closed on
// every exit path of the planning call that opened it.
type Handle interface {
	// Info returns the decoded metadata. Valid until Close.
	Info() MetaPageInfo

	// Close releases the handle.
	Close() error
}

// Provider opens metadata handles.
type Provider interface {
	// Open opens a read-only handle for the given index.
	// Returns ErrNotFound when the index has no metadata.
	Open(ctx context.Context, ref Ref) (Handle, error)
}

// staticHandle is a Handle over an in-memory copy; Close is a no-op.
type staticHandle struct {
	info MetaPageInfo
}

func (h *staticHandle) Info() MetaPageInfo { return h.info }

func (h *staticHandle) Close() error { return nil }

// NewHandle wraps a MetaPageInfo in a no-op Handle. Providers holding
// already-decoded metadata can return it directly.
func NewHandle(info MetaPageInfo) Handle {
	return &staticHandle{info: info}
}

// StaticProvider serves metadata from an in-memory table. It is safe for
// concurrent use; Register replaces any previous entry for the ref.
type StaticProvider struct {
	mu      sync.RWMutex
	indexes map[Ref]MetaPageInfo
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{indexes: make(map[Ref]MetaPageInfo)}
}

// Register installs metadata for an index.
func (p *StaticProvider) Register(ref Ref, info MetaPageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexes[ref] = info
}

// Open opens a read-only handle for the given index.
func (p *StaticProvider) Open(_ context.Context, ref Ref) (Handle, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	info, ok := p.indexes[ref]
	if !ok {
		return nil, ErrNotFound
	}
	return NewHandle(info), nil
}

var _ Provider = (*StaticProvider)(nil)
