package ports

import (
	"context"
	"io"
)

// ObjectInfo describes a stored object on read.
type ObjectInfo struct {
	ContentType string
	Size        int64
}

// FileStorage stores named objects in logical buckets.
type FileStorage interface {
	Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, bucket, name string) (io.ReadCloser, ObjectInfo, error)
}

// DocumentValidator checks uploaded resumes.
type DocumentValidator interface {
	ValidatePDF(content []byte) error
}
