package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/filledcard/ingest-cli/internal/db"
	"github.com/filledcard/ingest-cli/internal/model"
)

// PostgresStore implements Store using pgx. Nested sub-transactions map onto
// Postgres savepoints via pgx's nested Begin.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres connects to Postgres and returns a store.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by unit tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS dancers (
	id               TEXT PRIMARY KEY,
	email            TEXT NOT NULL UNIQUE,
	first_name       TEXT NOT NULL,
	last_name        TEXT NOT NULL,
	state            TEXT,
	studio_name      TEXT,
	ndca_id          TEXT,
	is_claimed       BOOLEAN NOT NULL DEFAULT false,
	is_teacher       BOOLEAN NOT NULL DEFAULT false,
	teacher_verified BOOLEAN NOT NULL DEFAULT false,
	open_to_pro_am   BOOLEAN NOT NULL DEFAULT false,
	partner_status   TEXT NOT NULL DEFAULT 'OPEN_TO_INQUIRIES',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_dancers_name_state ON dancers(first_name, last_name, state);

CREATE TABLE IF NOT EXISTS dance_styles (
	id               TEXT PRIMARY KEY,
	dancer_id        TEXT NOT NULL REFERENCES dancers(id),
	style            TEXT NOT NULL,
	category         TEXT NOT NULL,
	level            TEXT NOT NULL,
	is_competing     BOOLEAN NOT NULL DEFAULT false,
	wants_to_compete BOOLEAN NOT NULL DEFAULT false,
	UNIQUE (dancer_id, style)
);

CREATE TABLE IF NOT EXISTS competition_results (
	id                TEXT PRIMARY KEY,
	dancer_id         TEXT NOT NULL REFERENCES dancers(id),
	competition_name  TEXT NOT NULL,
	competition_date  TIMESTAMPTZ NOT NULL,
	location          TEXT,
	partner_name      TEXT,
	style             TEXT NOT NULL,
	level             TEXT NOT NULL,
	placement         INTEGER,
	total_competitors INTEGER,
	source            TEXT NOT NULL,
	external_id       TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_results_source_external
	ON competition_results(source, external_id) WHERE external_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_results_dancer ON competition_results(dancer_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Begin(ctx context.Context) (Batch, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin batch")
	}
	return &pgBatch{tx: tx}, nil
}

// pgBatch wraps a pgx transaction. pgx models nested Begin as savepoints,
// which is exactly the per-record sub-transaction this pipeline needs.
type pgBatch struct {
	tx pgx.Tx
}

func (b *pgBatch) Begin(ctx context.Context) (Batch, error) {
	inner, err := b.tx.Begin(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: begin sub-transaction")
	}
	return &pgBatch{tx: inner}, nil
}

func (b *pgBatch) Commit(ctx context.Context) error {
	return eris.Wrap(b.tx.Commit(ctx), "postgres: commit")
}

func (b *pgBatch) Rollback(ctx context.Context) error {
	return eris.Wrap(b.tx.Rollback(ctx), "postgres: rollback")
}

func (b *pgBatch) FindDancer(ctx context.Context, first, last string, state *string) (string, bool, error) {
	var id string
	err := b.tx.QueryRow(ctx,
		`SELECT id FROM dancers
		 WHERE first_name = $1 AND last_name = $2 AND state IS NOT DISTINCT FROM $3
		 LIMIT 1`,
		first, last, state,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, eris.Wrap(err, "postgres: find dancer")
	}
	return id, true, nil
}

func (b *pgBatch) FindDancerByName(ctx context.Context, first, last string) (string, bool, error) {
	var id string
	err := b.tx.QueryRow(ctx,
		`SELECT id FROM dancers WHERE first_name = $1 AND last_name = $2 LIMIT 1`,
		first, last,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, eris.Wrap(err, "postgres: find dancer by name")
	}
	return id, true, nil
}

func (b *pgBatch) InsertDancer(ctx context.Context, d *model.DancerProfile) error {
	_, err := b.tx.Exec(ctx,
		`INSERT INTO dancers (
			id, email, first_name, last_name, state, studio_name, ndca_id,
			is_claimed, is_teacher, teacher_verified, open_to_pro_am,
			partner_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		d.ID, d.Email, d.FirstName, d.LastName, d.State, d.StudioName, d.NDCAID,
		d.IsClaimed, d.IsTeacher, d.TeacherVerified, d.OpenToProAm,
		string(d.PartnerStatus), d.CreatedAt, d.UpdatedAt,
	)
	return eris.Wrap(err, "postgres: insert dancer")
}

func (b *pgBatch) InsertStyle(ctx context.Context, e *model.DanceStyleEntry) error {
	_, err := b.tx.Exec(ctx,
		`INSERT INTO dance_styles (id, dancer_id, style, category, level, is_competing, wants_to_compete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (dancer_id, style) DO NOTHING`,
		e.ID, e.DancerID, string(e.Style), string(e.Category), string(e.Level),
		e.IsCompeting, e.WantsToCompete,
	)
	return eris.Wrap(err, "postgres: insert style")
}

func (b *pgBatch) ResultExists(ctx context.Context, source model.Source, externalID string) (bool, error) {
	var id string
	err := b.tx.QueryRow(ctx,
		`SELECT id FROM competition_results WHERE source = $1 AND external_id = $2 LIMIT 1`,
		string(source), externalID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrap(err, "postgres: result exists")
	}
	return true, nil
}

func (b *pgBatch) InsertResult(ctx context.Context, r *model.CompetitionResultRecord) error {
	var externalID *string
	if r.ExternalID != nil && *r.ExternalID != "" {
		externalID = r.ExternalID
	}
	_, err := b.tx.Exec(ctx,
		`INSERT INTO competition_results (
			id, dancer_id, competition_name, competition_date, location,
			partner_name, style, level, placement, total_competitors,
			source, external_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.DancerID, r.CompetitionName, r.CompetitionDate, r.Location,
		r.PartnerName, string(r.Style), string(r.Level), r.Placement, r.TotalCompetitors,
		string(r.Source), externalID, r.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert result")
}
