// Package gridfs stores bucket objects in MongoDB GridFS, one GridFS bucket per
// logical storage bucket.
package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// bucket builds a fresh GridFS handle per call; deadlines are set on the
// handle, so sharing one between requests would race.
func (s *Store) bucket(ctx context.Context, name string) (*gridfs.Bucket, time.Time, error) {
	if !domain.KnownBucket(name) {
		return nil, time.Time{}, domain.ErrUnknownBucket
	}
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("gridfs bucket %s: %w", name, err)
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	return b, deadline, nil
}

func (s *Store) Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (int64, error) {
	b, deadline, err := s.bucket(ctx, bucket)
	if err != nil {
		return 0, err
	}
	if err := b.SetWriteDeadline(deadline); err != nil {
		return 0, fmt.Errorf("gridfs deadline: %w", err)
	}

	counter := &countingReader{r: r}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	if _, err := b.UploadFromStream(name, counter, opts); err != nil {
		return 0, fmt.Errorf("gridfs upload %s/%s: %w", bucket, name, err)
	}
	return counter.n, nil
}

func (s *Store) Open(ctx context.Context, bucket, name string) (io.ReadCloser, ports.ObjectInfo, error) {
	b, deadline, err := s.bucket(ctx, bucket)
	if err != nil {
		return nil, ports.ObjectInfo{}, err
	}
	if err := b.SetReadDeadline(deadline); err != nil {
		return nil, ports.ObjectInfo{}, fmt.Errorf("gridfs deadline: %w", err)
	}

	stream, err := b.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ports.ObjectInfo{}, domain.ErrObjectNotFound
		}
		return nil, ports.ObjectInfo{}, fmt.Errorf("gridfs open %s/%s: %w", bucket, name, err)
	}

	file := stream.GetFile()
	info := ports.ObjectInfo{Size: file.Length, ContentType: "application/octet-stream"}
	if file.Metadata != nil {
		if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
			info.ContentType = ct
		}
	}
	return stream, info, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var _ ports.FileStorage = (*Store)(nil)
