// Package store persists dancer profiles, style entries, and competition
// results. Two drivers are provided: Postgres (pgx) and SQLite (modernc),
// selected by configuration.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/filledcard/ingest-cli/internal/model"
)

// Records is the parameterized-query surface the reconciler runs against.
type Records interface {
	// FindDancer looks up a profile by the exact (first, last, state) soft
	// natural key. A nil state matches profiles with no state.
	FindDancer(ctx context.Context, first, last string, state *string) (id string, ok bool, err error)

	// FindDancerByName looks up a profile by (first, last) only, any state.
	FindDancerByName(ctx context.Context, first, last string) (id string, ok bool, err error)

	// InsertDancer writes a new profile row.
	InsertDancer(ctx context.Context, d *model.DancerProfile) error

	// InsertStyle writes a style entry, silently ignoring a duplicate
	// (dancer, style) pair.
	InsertStyle(ctx context.Context, e *model.DanceStyleEntry) error

	// ResultExists reports whether a result with this (source, externalID)
	// was already imported.
	ResultExists(ctx context.Context, source model.Source, externalID string) (bool, error)

	// InsertResult writes a new competition result row.
	InsertResult(ctx context.Context, r *model.CompetitionResultRecord) error
}

// Batch is a transaction. Begin opens a nested sub-transaction (a savepoint)
// used to isolate a single record's writes: rolling it back discards only
// that record, while the outer batch commit remains the durability unit.
type Batch interface {
	Records
	Begin(ctx context.Context) (Batch, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the persistence interface for the import pipeline.
type Store interface {
	Migrate(ctx context.Context) error
	Begin(ctx context.Context) (Batch, error)
	Close() error
}

// Open creates a store for the given driver name.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "", "postgres":
		return NewPostgres(ctx, databaseURL)
	case "sqlite":
		return NewSQLite(databaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
