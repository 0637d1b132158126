package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/filledcard/ingest-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite, for local runs
// without a Postgres instance. Sub-transactions are explicit savepoints.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path with WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS dancers (
	id               TEXT PRIMARY KEY,
	email            TEXT NOT NULL UNIQUE,
	first_name       TEXT NOT NULL,
	last_name        TEXT NOT NULL,
	state            TEXT,
	studio_name      TEXT,
	ndca_id          TEXT,
	is_claimed       BOOLEAN NOT NULL DEFAULT 0,
	is_teacher       BOOLEAN NOT NULL DEFAULT 0,
	teacher_verified BOOLEAN NOT NULL DEFAULT 0,
	open_to_pro_am   BOOLEAN NOT NULL DEFAULT 0,
	partner_status   TEXT NOT NULL DEFAULT 'OPEN_TO_INQUIRIES',
	created_at       DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at       DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_dancers_name_state ON dancers(first_name, last_name, state);

CREATE TABLE IF NOT EXISTS dance_styles (
	id               TEXT PRIMARY KEY,
	dancer_id        TEXT NOT NULL REFERENCES dancers(id),
	style            TEXT NOT NULL,
	category         TEXT NOT NULL,
	level            TEXT NOT NULL,
	is_competing     BOOLEAN NOT NULL DEFAULT 0,
	wants_to_compete BOOLEAN NOT NULL DEFAULT 0,
	UNIQUE (dancer_id, style)
);

CREATE TABLE IF NOT EXISTS competition_results (
	id                TEXT PRIMARY KEY,
	dancer_id         TEXT NOT NULL REFERENCES dancers(id),
	competition_name  TEXT NOT NULL,
	competition_date  DATETIME NOT NULL,
	location          TEXT,
	partner_name      TEXT,
	style             TEXT NOT NULL,
	level             TEXT NOT NULL,
	placement         INTEGER,
	total_competitors INTEGER,
	source            TEXT NOT NULL,
	external_id       TEXT,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_results_source_external
	ON competition_results(source, external_id) WHERE external_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_results_dancer ON competition_results(dancer_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Begin(ctx context.Context) (Batch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin batch")
	}
	return &sqliteBatch{tx: tx}, nil
}

// sqliteBatch wraps one *sql.Tx. Nested batches share the transaction and
// track a savepoint depth; depth 0 is the outer transaction itself.
type sqliteBatch struct {
	tx    *sql.Tx
	depth int
}

func (b *sqliteBatch) savepoint() string {
	return fmt.Sprintf("sp%d", b.depth)
}

func (b *sqliteBatch) Begin(ctx context.Context) (Batch, error) {
	inner := &sqliteBatch{tx: b.tx, depth: b.depth + 1}
	if _, err := b.tx.ExecContext(ctx, "SAVEPOINT "+inner.savepoint()); err != nil {
		return nil, eris.Wrap(err, "sqlite: begin sub-transaction")
	}
	return inner, nil
}

func (b *sqliteBatch) Commit(ctx context.Context) error {
	if b.depth == 0 {
		return eris.Wrap(b.tx.Commit(), "sqlite: commit")
	}
	_, err := b.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+b.savepoint())
	return eris.Wrap(err, "sqlite: release savepoint")
}

func (b *sqliteBatch) Rollback(ctx context.Context) error {
	if b.depth == 0 {
		return eris.Wrap(b.tx.Rollback(), "sqlite: rollback")
	}
	if _, err := b.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+b.savepoint()); err != nil {
		return eris.Wrap(err, "sqlite: rollback to savepoint")
	}
	_, err := b.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+b.savepoint())
	return eris.Wrap(err, "sqlite: release savepoint after rollback")
}

func (b *sqliteBatch) FindDancer(ctx context.Context, first, last string, state *string) (string, bool, error) {
	var id string
	err := b.tx.QueryRowContext(ctx,
		`SELECT id FROM dancers
		 WHERE first_name = ? AND last_name = ? AND state IS ?
		 LIMIT 1`,
		first, last, state,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, eris.Wrap(err, "sqlite: find dancer")
	}
	return id, true, nil
}

func (b *sqliteBatch) FindDancerByName(ctx context.Context, first, last string) (string, bool, error) {
	var id string
	err := b.tx.QueryRowContext(ctx,
		`SELECT id FROM dancers WHERE first_name = ? AND last_name = ? LIMIT 1`,
		first, last,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, eris.Wrap(err, "sqlite: find dancer by name")
	}
	return id, true, nil
}

func (b *sqliteBatch) InsertDancer(ctx context.Context, d *model.DancerProfile) error {
	_, err := b.tx.ExecContext(ctx,
		`INSERT INTO dancers (
			id, email, first_name, last_name, state, studio_name, ndca_id,
			is_claimed, is_teacher, teacher_verified, open_to_pro_am,
			partner_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Email, d.FirstName, d.LastName, d.State, d.StudioName, d.NDCAID,
		d.IsClaimed, d.IsTeacher, d.TeacherVerified, d.OpenToProAm,
		string(d.PartnerStatus), d.CreatedAt, d.UpdatedAt,
	)
	return eris.Wrap(err, "sqlite: insert dancer")
}

func (b *sqliteBatch) InsertStyle(ctx context.Context, e *model.DanceStyleEntry) error {
	_, err := b.tx.ExecContext(ctx,
		`INSERT INTO dance_styles (id, dancer_id, style, category, level, is_competing, wants_to_compete)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (dancer_id, style) DO NOTHING`,
		e.ID, e.DancerID, string(e.Style), string(e.Category), string(e.Level),
		e.IsCompeting, e.WantsToCompete,
	)
	return eris.Wrap(err, "sqlite: insert style")
}

func (b *sqliteBatch) ResultExists(ctx context.Context, source model.Source, externalID string) (bool, error) {
	var id string
	err := b.tx.QueryRowContext(ctx,
		`SELECT id FROM competition_results WHERE source = ? AND external_id = ? LIMIT 1`,
		string(source), externalID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrap(err, "sqlite: result exists")
	}
	return true, nil
}

func (b *sqliteBatch) InsertResult(ctx context.Context, r *model.CompetitionResultRecord) error {
	var externalID *string
	if r.ExternalID != nil && *r.ExternalID != "" {
		externalID = r.ExternalID
	}
	_, err := b.tx.ExecContext(ctx,
		`INSERT INTO competition_results (
			id, dancer_id, competition_name, competition_date, location,
			partner_name, style, level, placement, total_competitors,
			source, external_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.DancerID, r.CompetitionName, r.CompetitionDate, r.Location,
		r.PartnerName, string(r.Style), string(r.Level), r.Placement, r.TotalCompetitors,
		string(r.Source), externalID, r.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert result")
}
