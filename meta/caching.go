package meta

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingProvider wraps a Provider with a TTL cache. Concurrent planning
// calls for the same index share one fetch through singleflight, and repeat
// plans within the TTL skip the fetch entirely.
//
// Lists never changes after build, and tuple counts only need to be roughly
// current for costing, so a short TTL is safe.
type CachingProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	entries map[Ref]cacheEntry
}

type cacheEntry struct {
	info    MetaPageInfo
	expires time.Time
}

// DefaultMetadataTTL is the default cache lifetime.
const DefaultMetadataTTL = 30 * time.Second

// NewCachingProvider wraps inner with a TTL cache. A non-positive ttl uses
// DefaultMetadataTTL.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &CachingProvider{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Ref]cacheEntry),
	}
}

// Open returns cached metadata when fresh, fetching through the inner
// provider otherwise.
func (p *CachingProvider) Open(ctx context.Context, ref Ref) (Handle, error) {
	p.mu.RLock()
	entry, ok := p.entries[ref]
	p.mu.RUnlock()

	if ok && p.now().Before(entry.expires) {
		return NewHandle(entry.info), nil
	}

	v, err, _ := p.group.Do(string(ref), func() (any, error) {
		h, err := p.inner.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		defer h.Close()

		info := h.Info()
		p.mu.Lock()
		p.entries[ref] = cacheEntry{info: info, expires: p.now().Add(p.ttl)}
		p.mu.Unlock()
		return info, nil
	})
	if err != nil {
		return nil, err
	}

	return NewHandle(v.(MetaPageInfo)), nil
}

// Invalidate drops the cached entry for an index, forcing the next Open to
// fetch. The build and vacuum subsystems call it after rewriting the meta
// page.
func (p *CachingProvider) Invalidate(ref Ref) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, ref)
}

var _ Provider = (*CachingProvider)(nil)
