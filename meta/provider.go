package meta

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/ivfgo/pagestore"
)

// DefaultPageName is the page name the build subsystem writes the meta page
// under, relative to the index's prefix in the store.
const DefaultPageName = "meta.page"

// StoreProvider decodes index metadata out of a pagestore backend. The page
// name is derived from the Ref; by default ref "items_embedding" maps to
// "items_embedding/meta.page".
type StoreProvider struct {
	store    pagestore.Store
	pageName func(Ref) string
}

// StoreProviderOption configures a StoreProvider.
type StoreProviderOption func(*StoreProvider)

// WithPageName overrides how a Ref maps to a page name.
func WithPageName(fn func(Ref) string) StoreProviderOption {
	return func(p *StoreProvider) {
		if fn != nil {
			p.pageName = fn
		}
	}
}

// NewStoreProvider creates a Provider reading meta pages from store.
func NewStoreProvider(store pagestore.Store, optFns ...StoreProviderOption) *StoreProvider {
	p := &StoreProvider{
		store: store,
		pageName: func(ref Ref) string {
			return string(ref) + "/" + DefaultPageName
		},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(p)
		}
	}
	return p
}

// Open reads and decodes the index's meta page.
func (p *StoreProvider) Open(ctx context.Context, ref Ref) (Handle, error) {
	name := p.pageName(ref)

	data, err := pagestore.ReadAll(ctx, p.store, name)
	if err != nil {
		if errors.Is(err, pagestore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("meta: reading %q: %w", name, err)
	}

	info, err := DecodePage(data)
	if err != nil {
		return nil, fmt.Errorf("meta: decoding %q: %w", name, err)
	}
	return NewHandle(info), nil
}

var _ Provider = (*StoreProvider)(nil)
