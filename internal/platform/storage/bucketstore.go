package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient constructs a Cloud Storage client. An empty credentials file falls back to
// application default credentials.
func NewClient(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*storage.Client, error) {
	if path := strings.TrimSpace(credentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return client, nil
}

// BucketStore serves objects from a Cloud Storage bucket.
type BucketStore struct {
	bucket *storage.BucketHandle
	name   string
	prefix string
}

// BucketOption customises a BucketStore.
type BucketOption func(*BucketStore)

// WithPrefix places every key under prefix inside the bucket.
func WithPrefix(prefix string) BucketOption {
	return func(s *BucketStore) {
		prefix = strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			s.prefix = prefix + "/"
		}
	}
}

// NewBucketStore binds a store to the named bucket.
func NewBucketStore(client *storage.Client, bucket string, opts ...BucketOption) (*BucketStore, error) {
	if client == nil {
		return nil, errors.New("storage: client is required")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errInvalidBucket
	}
	store := &BucketStore{bucket: client.Bucket(bucket), name: bucket}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

var errInvalidBucket = errors.New("storage: bucket name is required")

// Open implements Store.
func (s *BucketStore) Open(ctx context.Context, key string) (*Object, error) {
	object := s.prefix + strings.TrimPrefix(key, "/")
	reader, err := s.bucket.Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s", ErrNotFound, s.name, object)
		}
		return nil, fmt.Errorf("storage: read gs://%s/%s: %w", s.name, object, err)
	}

	attrs := reader.Attrs
	contentType := attrs.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentTypeFor(object)
	}
	etag := weakETag(attrs.Size, attrs.LastModified)
	if attrs.Generation != 0 {
		etag = fmt.Sprintf(`"%x"`, attrs.Generation)
	}

	return &Object{
		ReadCloser:  reader,
		Key:         key,
		Size:        attrs.Size,
		ModTime:     attrs.LastModified,
		ContentType: contentType,
		ETag:        etag,
	}, nil
}

// String describes the store for logs.
func (s *BucketStore) String() string {
	return "gs://" + s.name + "/" + s.prefix
}
