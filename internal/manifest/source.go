package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// Source yields the raw manifest bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the manifest from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	if info, statErr := f.Stat(); statErr == nil && info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceUnavailable, s.Path)
	}
	return f, nil
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches the manifest with a GET request. Any non-2xx status is unavailable.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("manifest: build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, s.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: status %d", ErrResourceUnavailable, s.URL, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s HTTPSource) String() string { return s.URL }

// BucketSource reads the manifest from a Cloud Storage object.
type BucketSource struct {
	Client *storage.Client
	Bucket string
	Object string
}

func (s BucketSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("%w: %s: storage client not configured", ErrResourceUnavailable, s)
	}
	r, err := s.Client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResourceUnavailable, s, err)
	}
	return r, nil
}

func (s BucketSource) String() string { return "gs://" + s.Bucket + "/" + s.Object }

// SourceOption customises OpenSource.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	httpClient    *http.Client
	storageClient *storage.Client
}

// WithHTTPClient sets the client used for http(s) references.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(o *sourceOptions) { o.httpClient = client }
}

// WithStorageClient sets the client used for gs:// references.
func WithStorageClient(client *storage.Client) SourceOption {
	return func(o *sourceOptions) { o.storageClient = client }
}

// OpenSource picks a Source from a reference: gs://bucket/object, http(s)://… or a file path.
func OpenSource(ref string, opts ...SourceOption) (Source, error) {
	var options sourceOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("manifest: reference is required")
	}

	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "gs://"):
		rest := ref[len("gs://"):]
		bucket, object, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || object == "" {
			return nil, fmt.Errorf("manifest: invalid storage reference %q", ref)
		}
		return BucketSource{Client: options.storageClient, Bucket: bucket, Object: object}, nil
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		if _, err := url.Parse(ref); err != nil {
			return nil, fmt.Errorf("manifest: invalid url %q: %w", ref, err)
		}
		return HTTPSource{URL: ref, Client: options.httpClient}, nil
	default:
		return FileSource{Path: ref}, nil
	}
}
