// Package s3 stores bucket objects in a single S3 bucket, using the logical
// bucket name as the key prefix.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// API is the subset of the S3 client the store uses.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Store struct {
	client API
	bucket string
}

// Config selects the S3 bucket and, for S3-compatible services, a custom endpoint.
type Config struct {
	Region   string
	Bucket   string
	Endpoint string
}

// New loads the default AWS credential chain and creates a Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, cfg.Bucket), nil
}

func NewWithClient(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) Put(ctx context.Context, bucket, name, contentType string, r io.Reader) (int64, error) {
	key, err := objectKey(bucket, name)
	if err != nil {
		return 0, err
	}

	counter := &countingReader{r: r}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 counter,
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return 0, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return counter.n, nil
}

func (s *Store) Open(ctx context.Context, bucket, name string) (io.ReadCloser, ports.ObjectInfo, error) {
	key, err := objectKey(bucket, name)
	if err != nil {
		return nil, ports.ObjectInfo{}, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, ports.ObjectInfo{}, domain.ErrObjectNotFound
		}
		return nil, ports.ObjectInfo{}, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	info := ports.ObjectInfo{
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
	}
	if info.ContentType == "" {
		info.ContentType = "application/octet-stream"
	}
	return out.Body, info, nil
}

func objectKey(bucket, name string) (string, error) {
	if !domain.KnownBucket(bucket) {
		return "", domain.ErrUnknownBucket
	}
	return bucket + "/" + strings.TrimLeft(name, "/"), nil
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
