// Package pipeline drives the per-source scrape flows: fetch, extract with
// fallback strategies, normalize, dedupe, write the interchange file. The
// two sources are independent; a failure in one never aborts the other.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/filledcard/ingest-cli/internal/config"
	"github.com/filledcard/ingest-cli/internal/dedupe"
	"github.com/filledcard/ingest-cli/internal/fetcher"
	"github.com/filledcard/ingest-cli/internal/model"
	"github.com/filledcard/ingest-cli/internal/normalize"
	"github.com/filledcard/ingest-cli/internal/scrape"
)

// ScrapeNDCA runs the membership-registry flow and writes the dancer batch
// to <output_dir>/ndca_dancers.json.
func ScrapeNDCA(ctx context.Context, f fetcher.Fetcher, cfg config.ScrapeConfig) error {
	log := zap.L().With(zap.String("component", "pipeline.ndca"))

	doc, err := f.Get(ctx, cfg.NDCAMembersURL)
	if err != nil {
		// A failed fetch leaves the static strategy Unavailable; the
		// rendered fallback does its own navigation.
		log.Warn("members page fetch failed", zap.String("url", cfg.NDCAMembersURL), zap.Error(err))
		doc = nil
	}

	rows := scrape.Run[model.RawDancer](ctx,
		scrape.NewNDCAStatic(doc),
		scrape.NewNDCARendered(cfg.NDCAMembersURL, time.Duration(cfg.RenderTimeoutSecs)*time.Second),
		scrape.NDCASample{},
	)

	dancers := make([]model.RawDancer, 0, len(rows))
	for _, raw := range rows {
		d := normalize.Dancer(raw)
		if d.FirstName == "" {
			continue
		}
		dancers = append(dancers, d)
	}
	dancers = dedupe.Records(dancers, dedupe.DancerKey)

	path := filepath.Join(cfg.OutputDir, NDCAOutputFile)
	if err := WriteRecords(path, dancers); err != nil {
		return err
	}
	log.Info("wrote dancer batch", zap.Int("count", len(dancers)), zap.String("path", path))
	return nil
}

// ScrapeO2CM runs the results-registry flow and writes the result batch to
// <output_dir>/o2cm_results.json.
func ScrapeO2CM(ctx context.Context, f fetcher.Fetcher, cfg config.ScrapeConfig) error {
	log := zap.L().With(zap.String("component", "pipeline.o2cm"))

	rows := scrape.Run[model.RawResult](ctx,
		scrape.NewO2CMLive(f, cfg.O2CMBaseURL),
		scrape.O2CMSample{},
	)
	results := dedupe.Records(rows, dedupe.ResultKey)

	path := filepath.Join(cfg.OutputDir, O2CMOutputFile)
	if err := WriteRecords(path, results); err != nil {
		return err
	}
	log.Info("wrote result batch", zap.Int("count", len(results)), zap.String("path", path))
	return nil
}

// NewFetcher builds the HTTP fetcher from scrape settings, with the default
// per-host limiters attached.
func NewFetcher(cfg config.ScrapeConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.UserAgent,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		MaxRetries:   cfg.MaxRetries,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
}
