package pagestore

import (
	"bytes"
	"context"
	"sync"
)

// Memory is an in-memory Store for tests and embedded engines.
// It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	pages map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{pages: make(map[string][]byte)}
}

// Open opens a page for reading.
func (m *Memory) Open(_ context.Context, name string) (Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.pages[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy so later Puts cannot mutate an open handle.
	copied := make([]byte, len(data))
	copy(copied, data)

	return &memoryPage{r: bytes.NewReader(copied), size: int64(len(copied))}, nil
}

// Put writes a page, replacing any existing page of the same name.
func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[name] = copied
	return nil
}

// Delete removes a page. Deleting a missing page is not an error.
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, name)
	return nil
}

type memoryPage struct {
	r    *bytes.Reader
	size int64
}

func (p *memoryPage) ReadAt(b []byte, off int64) (int, error) {
	return p.r.ReadAt(b, off)
}

func (p *memoryPage) Close() error { return nil }

func (p *memoryPage) Size() int64 { return p.size }

var (
	_ Store  = (*Memory)(nil)
	_ Writer = (*Memory)(nil)
)
