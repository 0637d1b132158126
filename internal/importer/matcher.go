package importer

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/filledcard/ingest-cli/internal/store"
)

// MatchKind classifies a matcher verdict.
type MatchKind int

const (
	// MatchNone means no existing profile corresponds to the record.
	MatchNone MatchKind = iota
	// MatchExact means a profile matched on the full natural key.
	MatchExact
)

// MatchResult is a matcher verdict. DancerID is set only for MatchExact.
type MatchResult struct {
	Kind     MatchKind
	DancerID string
}

// Matcher decides whether an incoming record corresponds to an existing
// profile. Pulled behind an interface so fuzzier strategies can be swapped
// in without touching the import loop.
type Matcher interface {
	Match(ctx context.Context, rec store.Records, first, last string, state *string) (MatchResult, error)
}

// ExactMatcher matches on the exact (first, last, state) tuple. A record
// with no state only matches a profile with no state.
type ExactMatcher struct{}

func (ExactMatcher) Match(ctx context.Context, rec store.Records, first, last string, state *string) (MatchResult, error) {
	id, ok, err := rec.FindDancer(ctx, first, last, state)
	if err != nil {
		return MatchResult{}, eris.Wrap(err, "importer: exact match lookup")
	}
	if !ok {
		return MatchResult{Kind: MatchNone}, nil
	}
	return MatchResult{Kind: MatchExact, DancerID: id}, nil
}
