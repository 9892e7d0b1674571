package pagestore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a page does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store provides read access to named index pages.
type Store interface {
	// Open opens a page for reading. The returned Page must be closed.
	Open(ctx context.Context, name string) (Page, error)
}

// Page is a read-only handle to a stored page.
type Page interface {
	io.ReaderAt
	io.Closer

	// Size returns the size of the page in bytes.
	Size() int64
}

// Writer is implemented by stores that can also write pages. The build and
// vacuum subsystems write the meta page; planning only reads it back.
type Writer interface {
	// Put writes a page atomically, replacing any existing page of the
	// same name.
	Put(ctx context.Context, name string, data []byte) error
}

// ReadAll reads the full contents of a named page.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	p, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	data := make([]byte, p.Size())
	if _, err := io.ReadFull(io.NewSectionReader(p, 0, p.Size()), data); err != nil {
		return nil, err
	}
	return data, nil
}
