// Package dedupe collapses scraped batches to unique records before import.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/filledcard/ingest-cli/internal/model"
)

// Records returns in with duplicates removed, keyed by key. Order is
// preserved and the first occurrence of each key wins.
func Records[T any](in []T, key func(T) string) []T {
	seen := make(map[string]bool, len(in))
	out := make([]T, 0, len(in))
	for _, r := range in {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// DancerKey is the soft natural key for dancer rows:
// lower(first)_lower(last)_state.
func DancerKey(d model.RawDancer) string {
	return strings.ToLower(d.FirstName) + "_" + strings.ToLower(d.LastName) + "_" + d.State
}

// ResultKey keys result rows by externalId when present. Rows without one
// fall back to a rendering of the whole record; two distinct results with
// identical visible fields therefore collapse. That approximation is
// inherited from the upstream scrapers and kept as-is.
func ResultKey(r model.RawResult) string {
	if r.ExternalID != "" {
		return r.ExternalID
	}
	return fmt.Sprintf("%+v", r)
}
