package resources

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes of an asset path.
type Fetcher interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fsProvider is implemented by fetchers backed by an fs.FS, which lets
// decoders resolve sibling files such as external glTF buffers.
type fsProvider interface {
	FileSystem() fs.FS
}

// FSFetcher reads assets from a file system, e.g. os.DirFS or an embed.FS.
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher returns a Fetcher reading from fsys.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// Open opens p relative to the file system root. Leading "./" and "/" are
// ignored so web-style manifest paths work unchanged.
func (f *FSFetcher) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.fsys.Open(cleanPath(p))
}

// FileSystem returns the underlying fs.FS.
func (f *FSFetcher) FileSystem() fs.FS { return f.fsys }

// cleanPath converts a manifest path into an fs.ValidPath.
func cleanPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

// HTTPFetcher reads assets relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher returns a Fetcher resolving paths against base. A nil
// client uses http.DefaultClient.
func NewHTTPFetcher(base string, client *http.Client) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse asset base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{base: u, client: client}, nil
}

// Open issues a GET for p. Any non-2xx status is an error.
func (f *HTTPFetcher) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, err
	}
	u := f.base.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return resp.Body, nil
}

// readAll fetches p and returns its contents.
func readAll(ctx context.Context, f Fetcher, p string) ([]byte, error) {
	rc, err := f.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
