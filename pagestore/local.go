package pagestore

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/ivfgo/internal/mmap"
)

// Local is a Store rooted at a filesystem directory. Pages are read through
// memory mapping, which is the cheapest random-access path for immutable
// files, and written via rename for atomicity.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Open opens a page for reading.
func (s *Local) Open(_ context.Context, name string) (Page, error) {
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &localPage{m: m}, nil
}

// Put writes a page atomically via a temp file and rename.
func (s *Local) Put(_ context.Context, name string, data []byte) error {
	dst := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, dst)
}

type localPage struct {
	m *mmap.Mapping
}

func (p *localPage) ReadAt(b []byte, off int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := p.m.ReadAt(b, off)
	if err == mmap.ErrClosed {
		return n, os.ErrClosed
	}
	return n, err
}

func (p *localPage) Close() error {
	return p.m.Close()
}

func (p *localPage) Size() int64 {
	return int64(p.m.Size())
}

// Bytes exposes the zero-copy mapped contents. The slice is valid until the
// page is closed.
func (p *localPage) Bytes() ([]byte, error) {
	b := p.m.Bytes()
	if b == nil && p.m.Size() > 0 {
		return nil, os.ErrClosed
	}
	return b, nil
}

var (
	_ Store     = (*Local)(nil)
	_ Writer    = (*Local)(nil)
	_ io.Closer = (*localPage)(nil)
)
