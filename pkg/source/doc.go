// Package source reads network files from disk or over HTTP.
//
// A location is either a file path or an http(s) URL:
//
//	f := source.New(nil)
//	data, err := f.Fetch(ctx, "https://example.com/networks/star.json")
//	format := io.DetectFormat(source.Name(loc))
//
// Remote reads share the retry policy of pkg/cache: network errors, 429 and
// 5xx responses are retried with exponential backoff, a 404 fails at once
// with NOT_FOUND. Files larger than [DefaultMaxBytes] are rejected with
// TOO_LARGE.
package source
