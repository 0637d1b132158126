// Package importer reconciles scraped dancer and result batches into the
// store. Each record runs inside its own sub-transaction so a single bad
// record is rolled back and counted without poisoning the batch; the outer
// batch commit is the durability unit.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/filledcard/ingest-cli/internal/model"
	"github.com/filledcard/ingest-cli/internal/normalize"
	"github.com/filledcard/ingest-cli/internal/store"
)

// Stats tallies the outcome of one import pass.
type Stats struct {
	Inserted int
	Skipped  int
	Linked   int
	Errored  int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d inserted | %d skipped | %d linked | %d errors",
		s.Inserted, s.Skipped, s.Linked, s.Errored)
}

// Importer writes scraped batches through a store.Batch.
type Importer struct {
	matcher Matcher
	log     *zap.Logger
	now     func() time.Time
}

// New returns an importer. A nil matcher defaults to exact matching.
func New(matcher Matcher) *Importer {
	if matcher == nil {
		matcher = ExactMatcher{}
	}
	return &Importer{
		matcher: matcher,
		log:     zap.L().With(zap.String("component", "importer")),
		now:     time.Now,
	}
}

// ImportDancers reconciles membership rows into dancer profiles. Rows that
// match an existing profile are skipped; the rest become provisional
// profiles with their declared styles attached.
func (im *Importer) ImportDancers(ctx context.Context, batch store.Batch, dancers []model.RawDancer) (Stats, error) {
	var stats Stats

	for _, raw := range dancers {
		d := normalize.Dancer(raw)
		if d.FirstName == "" || d.LastName == "" {
			stats.Skipped++
			continue
		}

		sub, err := batch.Begin(ctx)
		if err != nil {
			return stats, eris.Wrap(err, "importer: begin dancer sub-transaction")
		}

		if err := im.importDancer(ctx, sub, d, &stats); err != nil {
			im.log.Warn("dancer import failed",
				zap.String("firstName", d.FirstName),
				zap.String("lastName", d.LastName),
				zap.Error(err))
			if rbErr := sub.Rollback(ctx); rbErr != nil {
				return stats, eris.Wrap(rbErr, "importer: rollback dancer sub-transaction")
			}
			stats.Errored++
			continue
		}
		if err := sub.Commit(ctx); err != nil {
			return stats, eris.Wrap(err, "importer: commit dancer sub-transaction")
		}
	}
	return stats, nil
}

func (im *Importer) importDancer(ctx context.Context, rec store.Records, d model.RawDancer, stats *Stats) error {
	match, err := im.matcher.Match(ctx, rec, d.FirstName, d.LastName, nullable(d.State))
	if err != nil {
		return err
	}
	if match.Kind == MatchExact {
		stats.Skipped++
		return nil
	}

	now := im.now().UTC()
	profile := &model.DancerProfile{
		ID:         model.NewID(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		State:      nullable(d.State),
		StudioName: nullable(d.Studio),
		NDCAID:     nullable(d.NDCAID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	profile.Email = model.PlaceholderEmail(d.FirstName, d.LastName, profile.ID)
	model.DefaultProfile().Apply(profile)

	if err := rec.InsertDancer(ctx, profile); err != nil {
		return err
	}

	for _, rs := range d.Styles {
		style := normalize.Style(rs.Style)
		entry := &model.DanceStyleEntry{
			ID:       model.NewID(),
			DancerID: profile.ID,
			Style:    style,
			Category: normalize.CategoryOf(style),
			Level:    normalize.Level(rs.Level),
		}
		// A bad style entry is not worth losing the profile over.
		if err := rec.InsertStyle(ctx, entry); err != nil {
			im.log.Warn("style insert failed",
				zap.String("dancerId", profile.ID),
				zap.String("style", string(style)),
				zap.Error(err))
		}
	}

	stats.Inserted++
	return nil
}

// ImportResults reconciles competition rows. Results are linked to an
// existing profile by name when one exists, otherwise a provisional profile
// is created for the lead dancer first. Rows whose external id was already
// imported are skipped, which makes re-running an import a no-op.
func (im *Importer) ImportResults(ctx context.Context, batch store.Batch, results []model.RawResult) (Stats, error) {
	var stats Stats

	for _, raw := range results {
		sub, err := batch.Begin(ctx)
		if err != nil {
			return stats, eris.Wrap(err, "importer: begin result sub-transaction")
		}

		if err := im.importResult(ctx, sub, raw, &stats); err != nil {
			im.log.Warn("result import failed",
				zap.String("competition", raw.CompetitionName),
				zap.String("dancer1Name", raw.Dancer1Name),
				zap.Error(err))
			if rbErr := sub.Rollback(ctx); rbErr != nil {
				return stats, eris.Wrap(rbErr, "importer: rollback result sub-transaction")
			}
			stats.Errored++
			continue
		}
		if err := sub.Commit(ctx); err != nil {
			return stats, eris.Wrap(err, "importer: commit result sub-transaction")
		}
	}
	return stats, nil
}

func (im *Importer) importResult(ctx context.Context, rec store.Records, raw model.RawResult, stats *Stats) error {
	source := raw.Source
	if source == "" {
		source = model.SourceO2CM
	}

	if raw.ExternalID != "" {
		exists, err := rec.ResultExists(ctx, source, raw.ExternalID)
		if err != nil {
			return err
		}
		if exists {
			stats.Skipped++
			return nil
		}
	}

	first, last := normalize.SplitName(raw.Dancer1Name)
	if first == "" {
		stats.Skipped++
		return nil
	}

	dancerID, ok, err := rec.FindDancerByName(ctx, first, last)
	if err != nil {
		// A failed lookup is an infrastructure error, not a data problem;
		// let the caller roll this record back and count it as errored.
		return err
	}
	if ok {
		stats.Linked++
	} else {
		dancerID, err = im.createProvisional(ctx, rec, first, last)
		if err != nil {
			// A result never inserts without a dancer reference; drop the
			// row rather than fail the record.
			im.log.Warn("could not create profile for result",
				zap.String("dancer1Name", raw.Dancer1Name),
				zap.Error(err))
			stats.Skipped++
			return nil
		}
	}

	name := raw.CompetitionName
	if name == "" {
		name = "Unknown Competition"
	}
	style := normalize.Style(raw.Style)

	record := &model.CompetitionResultRecord{
		ID:               model.NewID(),
		DancerID:         dancerID,
		CompetitionName:  name,
		CompetitionDate:  im.parseDate(raw.CompetitionDate),
		Location:         nullable(raw.Location),
		PartnerName:      nullable(raw.Dancer2Name),
		Style:            style,
		Level:            normalize.Level(raw.Level),
		Placement:        raw.Placement,
		TotalCompetitors: raw.TotalCompetitors,
		Source:           source,
		ExternalID:       nullable(raw.ExternalID),
		CreatedAt:        im.now().UTC(),
	}
	if err := rec.InsertResult(ctx, record); err != nil {
		return err
	}

	stats.Inserted++
	return nil
}

// createProvisional inserts a minimal profile for a result's lead dancer
// when no existing profile matched by name.
func (im *Importer) createProvisional(ctx context.Context, rec store.Records, first, last string) (string, error) {
	now := im.now().UTC()
	profile := &model.DancerProfile{
		ID:        model.NewID(),
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile.Email = model.PlaceholderEmail(first, last, profile.ID)
	model.DefaultProfile().Apply(profile)

	if err := rec.InsertDancer(ctx, profile); err != nil {
		return "", err
	}
	return profile.ID, nil
}

// parseDate reads the leading YYYY-MM-DD of a scraped date string. Anything
// unparseable falls back to the import time so the row is still usable.
func (im *Importer) parseDate(s string) time.Time {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t
		}
	}
	return im.now().UTC()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
