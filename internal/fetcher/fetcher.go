// Package fetcher retrieves registry pages over HTTP with retry and
// per-host rate limiting.
package fetcher

import "context"

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}
