package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filledcard/ingest-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "ingest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testDancer(first, last string, state *string) *model.DancerProfile {
	d := &model.DancerProfile{
		ID:        model.NewID(),
		FirstName: first,
		LastName:  last,
		State:     state,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	d.Email = model.PlaceholderEmail(first, last, d.ID)
	model.DefaultProfile().Apply(d)
	return d
}

func TestSQLiteInsertAndFindDancer(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	ny := "NY"

	batch, err := s.Begin(ctx)
	require.NoError(t, err)

	d := testDancer("Ann", "Lee", &ny)
	require.NoError(t, batch.InsertDancer(ctx, d))

	id, ok, err := batch.FindDancer(ctx, "Ann", "Lee", &ny)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, d.ID, id)

	// A different state does not match.
	_, ok, err = batch.FindDancer(ctx, "Ann", "Lee", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// Name-only lookup ignores state.
	id, ok, err = batch.FindDancerByName(ctx, "Ann", "Lee")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, d.ID, id)

	require.NoError(t, batch.Commit(ctx))
}

func TestSQLiteFindDancer_NilStateMatchesNullOnly(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	require.NoError(t, err)

	d := testDancer("Bob", "Ray", nil)
	require.NoError(t, batch.InsertDancer(ctx, d))

	id, ok, err := batch.FindDancer(ctx, "Bob", "Ray", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, d.ID, id)

	require.NoError(t, batch.Commit(ctx))
}

func TestSQLiteInsertStyle_DuplicateIgnored(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	require.NoError(t, err)

	d := testDancer("Ann", "Lee", nil)
	require.NoError(t, batch.InsertDancer(ctx, d))

	entry := &model.DanceStyleEntry{
		ID:       model.NewID(),
		DancerID: d.ID,
		Style:    model.StyleWaltz,
		Category: model.CategoryStandard,
		Level:    model.LevelGold,
	}
	require.NoError(t, batch.InsertStyle(ctx, entry))

	dup := *entry
	dup.ID = model.NewID()
	dup.Level = model.LevelSilver
	require.NoError(t, batch.InsertStyle(ctx, &dup))

	require.NoError(t, batch.Commit(ctx))
}

func TestSQLiteResultRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	require.NoError(t, err)

	d := testDancer("Ann", "Lee", nil)
	require.NoError(t, batch.InsertDancer(ctx, d))

	ext := "o2cm_sample_001"
	r := &model.CompetitionResultRecord{
		ID:              model.NewID(),
		DancerID:        d.ID,
		CompetitionName: "Ohio Star Ball 2024",
		CompetitionDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Style:           model.StyleWaltz,
		Level:           model.LevelGold,
		Source:          model.SourceO2CM,
		ExternalID:      &ext,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, batch.InsertResult(ctx, r))

	exists, err := batch.ResultExists(ctx, model.SourceO2CM, ext)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = batch.ResultExists(ctx, model.SourceO2CM, "o2cm_other")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, batch.Commit(ctx))
}

func TestSQLiteSubTransactionRollbackIsolatesRecord(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	require.NoError(t, err)

	good := testDancer("Ann", "Lee", nil)
	sub, err := batch.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sub.InsertDancer(ctx, good))
	require.NoError(t, sub.Commit(ctx))

	// Second record fails inside its savepoint and is rolled back alone.
	bad := testDancer("Bob", "Ray", nil)
	bad.Email = good.Email // violates email uniqueness
	sub, err = batch.Begin(ctx)
	require.NoError(t, err)
	require.Error(t, sub.InsertDancer(ctx, bad))
	require.NoError(t, sub.Rollback(ctx))

	// The batch is still usable and the first record survives the commit.
	third := testDancer("Cara", "Diaz", nil)
	sub, err = batch.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sub.InsertDancer(ctx, third))
	require.NoError(t, sub.Commit(ctx))

	require.NoError(t, batch.Commit(ctx))

	check, err := s.Begin(ctx)
	require.NoError(t, err)
	defer check.Rollback(ctx)

	_, ok, err := check.FindDancer(ctx, "Ann", "Lee", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = check.FindDancer(ctx, "Bob", "Ray", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = check.FindDancer(ctx, "Cara", "Diaz", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteBatchRollbackDiscardsAll(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	batch, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.InsertDancer(ctx, testDancer("Ann", "Lee", nil)))
	require.NoError(t, batch.Rollback(ctx))

	check, err := s.Begin(ctx)
	require.NoError(t, err)
	defer check.Rollback(ctx)

	_, ok, err := check.FindDancer(ctx, "Ann", "Lee", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
