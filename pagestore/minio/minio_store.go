package minio

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/hupe1980/ivfgo/pagestore"
	"github.com/minio/minio-go/v7"
)

// Store implements pagestore.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO page store. rootPrefix is prepended to all
// keys (e.g. "indexes/items_embedding/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a page for reading.
func (s *Store) Open(ctx context.Context, name string) (pagestore.Page, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, pagestore.ErrNotFound
		}
		return nil, err
	}

	return &minioPage{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// Put writes a page, replacing any existing page of the same name.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

type minioPage struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (p *minioPage) Close() error { return nil }

func (p *minioPage) Size() int64 { return p.size }

func (p *minioPage) ReadAt(b []byte, off int64) (int, error) {
	if off >= p.size {
		return 0, io.EOF
	}

	length := int64(len(b))
	if off+length > p.size {
		length = p.size - off
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, off+length-1); err != nil {
		return 0, err
	}

	obj, err := p.client.GetObject(context.Background(), p.bucket, p.key, opts)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, b[:length])
	if err == nil && int64(n) < int64(len(b)) {
		return n, io.EOF
	}
	return n, err
}

var (
	_ pagestore.Store  = (*Store)(nil)
	_ pagestore.Writer = (*Store)(nil)
)
