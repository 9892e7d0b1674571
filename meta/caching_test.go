package meta

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider counts Open calls.
type countingProvider struct {
	inner Provider
	opens atomic.Int64
}

func (p *countingProvider) Open(ctx context.Context, ref Ref) (Handle, error) {
	p.opens.Add(1)
	return p.inner.Open(ctx, ref)
}

func newCountingProvider() *countingProvider {
	inner := NewStaticProvider()
	inner.Register("idx", MetaPageInfo{Lists: 100, Tuples: 500})
	return &countingProvider{inner: inner}
}

func TestCachingProviderCachesWithinTTL(t *testing.T) {
	counting := newCountingProvider()
	p := NewCachingProvider(counting, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		h, err := p.Open(ctx, "idx")
		require.NoError(t, err)
		assert.Equal(t, 100, h.Info().Lists)
		require.NoError(t, h.Close())
	}

	assert.Equal(t, int64(1), counting.opens.Load())
}

func TestCachingProviderExpires(t *testing.T) {
	counting := newCountingProvider()
	p := NewCachingProvider(counting, time.Minute)
	ctx := context.Background()

	now := time.Unix(1000, 0)
	p.now = func() time.Time { return now }

	_, err := p.Open(ctx, "idx")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, err = p.Open(ctx, "idx")
	require.NoError(t, err)

	assert.Equal(t, int64(2), counting.opens.Load())
}

func TestCachingProviderInvalidate(t *testing.T) {
	counting := newCountingProvider()
	p := NewCachingProvider(counting, time.Minute)
	ctx := context.Background()

	_, err := p.Open(ctx, "idx")
	require.NoError(t, err)

	p.Invalidate("idx")

	_, err = p.Open(ctx, "idx")
	require.NoError(t, err)

	assert.Equal(t, int64(2), counting.opens.Load())
}

func TestCachingProviderErrorNotCached(t *testing.T) {
	counting := &countingProvider{inner: NewStaticProvider()}
	p := NewCachingProvider(counting, time.Minute)
	ctx := context.Background()

	_, err := p.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = p.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int64(2), counting.opens.Load())
}

func TestCachingProviderConcurrent(t *testing.T) {
	counting := newCountingProvider()
	p := NewCachingProvider(counting, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := p.Open(ctx, "idx")
			assert.NoError(t, err)
			if err == nil {
				assert.Equal(t, 100, h.Info().Lists)
				h.Close()
			}
		}()
	}
	wg.Wait()

	// Once warm, further opens never hit the inner provider.
	warm := counting.opens.Load()
	for i := 0; i < 8; i++ {
		_, err := p.Open(ctx, "idx")
		require.NoError(t, err)
	}
	assert.Equal(t, warm, counting.opens.Load())
}
