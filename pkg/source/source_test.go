package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

const starEdges = "hub a\nhub b\nhub c\n"

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star.edges")
	if err := os.WriteFile(path, []byte(starEdges), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := New(nil).Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != starEdges {
		t.Errorf("data = %q", data)
	}

	_, err = New(nil).Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) || !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(starEdges))
	}))
	defer srv.Close()

	f := New(map[string]string{"Authorization": "Bearer t"})
	data, err := f.Fetch(context.Background(), srv.URL+"/nets/star.edges?rev=2")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != starEdges {
		t.Errorf("data = %q", data)
	}
}

func TestFetchRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(starEdges))
	}))
	defer srv.Close()

	if _, err := New(nil).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		max    int64
		code   errs.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, "", DefaultMaxBytes, errs.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, "", DefaultMaxBytes, errs.ErrCodeInternal, 1},
		{"server error", http.StatusBadGateway, "", DefaultMaxBytes, errs.ErrCodeInternal, 3},
		{"too large", http.StatusOK, strings.Repeat("a b\n", 10), 8, errs.ErrCodeTooLarge, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(nil).WithMaxBytes(tt.max).Fetch(context.Background(), srv.URL+"/net.json")
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil).Fetch(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestName(t *testing.T) {
	tests := map[string]string{
		"net.json":                          "net.json",
		"/data/nets/ring.edges":             "ring.edges",
		"https://example.com/a/b.yaml?x=1":  "b.yaml",
		"http://example.com/campus.toml#v2": "campus.toml",
	}
	for in, want := range tests {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}
