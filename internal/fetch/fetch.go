// Package fetch retrieves site resources (partials, the portfolio document)
// either from a local public directory or from a deployed origin. Both
// sources behave like a browser fetch with caching disabled.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher returns the body of a site-absolute resource such as
// "/partials/header.html".
type Fetcher interface {
	Fetch(ctx context.Context, resource string) ([]byte, error)
}

// StatusError reports a non-OK response for a resource.
type StatusError struct {
	Resource string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d %s", e.Resource, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// DirFetcher serves resources from a directory on disk, mapping the site
// root to Root.
type DirFetcher struct {
	Root string
}

// NewDirFetcher creates a DirFetcher rooted at dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{Root: dir}
}

// Fetch reads the resource from disk. Paths that escape Root and missing
// files are reported as 404.
func (f *DirFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, ok := cleanResource(resource)
	if !ok {
		return nil, &StatusError{Resource: resource, Code: http.StatusNotFound}
	}

	data, err := os.ReadFile(filepath.Join(f.Root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{Resource: resource, Code: http.StatusNotFound}
		}
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	return data, nil
}

// cleanResource turns a site-absolute path into a slash-separated path
// relative to the site root. It rejects anything pointing outside the root.
func cleanResource(resource string) (string, bool) {
	if i := strings.IndexAny(resource, "?#"); i >= 0 {
		resource = resource[:i]
	}
	cleaned := path.Clean("/" + resource)
	rel := strings.TrimPrefix(cleaned, "/")
	if rel == "" || !fs.ValidPath(rel) {
		return "", false
	}
	return rel, true
}

// HTTPFetcher retrieves resources from a remote origin such as
// "https://example.com".
type HTTPFetcher struct {
	Origin string
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with a default client timeout.
func NewHTTPFetcher(origin string) *HTTPFetcher {
	return &HTTPFetcher{
		Origin: strings.TrimRight(origin, "/"),
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch issues a GET with caching disabled. Any non-2xx status is returned
// as a *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	url := f.Origin + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Resource: resource, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resource, err)
	}
	return body, nil
}
