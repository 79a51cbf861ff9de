package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/netvalue/pkg/cache"
	errs "github.com/matzehuels/netvalue/pkg/errors"
)

const (
	httpTimeout = 30 * time.Second

	// DefaultMaxBytes caps how much of a network file is read.
	DefaultMaxBytes int64 = 64 << 20
)

var (
	// ErrNotFound is returned when a file or URL does not exist.
	ErrNotFound = errors.New("network file not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Fetcher reads network files from local paths and http(s) URLs.
// Remote reads are retried with backoff on network errors and 5xx responses.
type Fetcher struct {
	http     *http.Client
	headers  map[string]string
	maxBytes int64
}

// New creates a Fetcher. Headers are sent with every remote request;
// pass nil if none are needed.
func New(headers map[string]string) *Fetcher {
	return &Fetcher{
		http:     &http.Client{Timeout: httpTimeout},
		headers:  headers,
		maxBytes: DefaultMaxBytes,
	}
}

// WithMaxBytes returns a copy of f that rejects files larger than n bytes.
func (f *Fetcher) WithMaxBytes(n int64) *Fetcher {
	c := *f
	c.maxBytes = n
	return &c
}

// IsRemote reports whether loc is an http or https URL.
func IsRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

// Name returns the file name of loc, used for format detection. For URLs
// the query string is ignored.
func Name(loc string) string {
	if IsRemote(loc) {
		if u, err := url.Parse(loc); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(loc)
}

// Fetch returns the contents of loc.
func (f *Fetcher) Fetch(ctx context.Context, loc string) ([]byte, error) {
	if !IsRemote(loc) {
		return f.readFile(loc)
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = f.get(ctx, loc)
		return err
	})
	switch {
	case err == nil:
		return data, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, ErrNotFound):
		return nil, errs.Wrap(errs.ErrCodeNotFound, err, "fetch %s", loc)
	case errs.GetCode(err) != "":
		return nil, err
	default:
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "fetch %s", loc)
	}
}

func (f *Fetcher) readFile(name string) ([]byte, error) {
	file, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, fmt.Errorf("%w: %v", ErrNotFound, err), "read %s", name)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read %s", name)
	}
	defer file.Close()
	return f.readAll(file, name)
}

func (f *Fetcher) get(ctx context.Context, loc string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "bad URL %s", loc)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return f.readAll(resp.Body, loc)
}

func (f *Fetcher) readAll(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	if int64(len(data)) > f.maxBytes {
		return nil, errs.New(errs.ErrCodeTooLarge, "%s is larger than %d bytes", name, f.maxBytes)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500, code == http.StatusTooManyRequests:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
