// Package scrape extracts raw dancer and competition-result rows from the
// NDCA and O2CM registries. Each source runs an ordered chain of extraction
// strategies; the first strategy to yield rows wins.
package scrape

import (
	"context"

	"go.uber.org/zap"
)

// Outcome is the tri-state result of one extraction strategy.
type Outcome int

const (
	// Success means the strategy produced usable rows.
	Success Outcome = iota
	// Inconclusive means the document was fetched but no known structure
	// matched, usually because the content needs script execution to render.
	Inconclusive
	// Unavailable means the strategy could not run at all (no document,
	// browser failure, network error).
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Inconclusive:
		return "inconclusive"
	default:
		return "unavailable"
	}
}

// Strategy is one way of extracting rows of type T.
type Strategy[T any] interface {
	Name() string
	Extract(ctx context.Context) ([]T, Outcome)
}

// Run tries strategies in order and returns the rows of the first Success.
// Fallbacks are logged; if every strategy fails, Run returns nil.
func Run[T any](ctx context.Context, strategies ...Strategy[T]) []T {
	log := zap.L().With(zap.String("component", "scrape"))
	for _, s := range strategies {
		rows, outcome := s.Extract(ctx)
		if outcome == Success {
			log.Info("extraction succeeded",
				zap.String("strategy", s.Name()),
				zap.Int("rows", len(rows)),
			)
			return rows
		}
		log.Warn("extraction strategy yielded nothing, falling back",
			zap.String("strategy", s.Name()),
			zap.String("outcome", outcome.String()),
		)
	}
	return nil
}
