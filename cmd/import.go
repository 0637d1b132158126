package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/filledcard/ingest-cli/internal/importer"
	"github.com/filledcard/ingest-cli/internal/model"
	"github.com/filledcard/ingest-cli/internal/pipeline"
	"github.com/filledcard/ingest-cli/internal/store"
)

var (
	importNDCAOnly bool
	importO2CMOnly bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import scraped batches into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if importNDCAOnly && importO2CMOnly {
			return eris.New("--ndca-only and --o2cm-only are mutually exclusive")
		}
		if err := cfg.Validate("import"); err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate")
		}

		im := importer.New(nil)

		if !importO2CMOnly {
			if err := importNDCA(ctx, st, im); err != nil {
				return err
			}
		}
		if !importNDCAOnly {
			if err := importO2CM(ctx, st, im); err != nil {
				return err
			}
		}
		return nil
	},
}

func importNDCA(ctx context.Context, st store.Store, im *importer.Importer) error {
	path := filepath.Join(cfg.Scrape.OutputDir, pipeline.NDCAOutputFile)
	dancers, err := pipeline.ReadRecords[model.RawDancer](path)
	if err != nil {
		return eris.Wrap(err, "read ndca batch")
	}
	if dancers == nil {
		return nil
	}

	stats, err := runBatch(ctx, st, func(batch store.Batch) (importer.Stats, error) {
		return im.ImportDancers(ctx, batch, dancers)
	})
	if err != nil {
		return eris.Wrap(err, "import ndca")
	}

	zap.L().Info("ndca import complete", zap.Int("records", len(dancers)), zap.String("stats", stats.String()))
	fmt.Printf("NDCA Dancers: %d inserted | %d skipped | %d errors\n",
		stats.Inserted, stats.Skipped, stats.Errored)
	return nil
}

func importO2CM(ctx context.Context, st store.Store, im *importer.Importer) error {
	path := filepath.Join(cfg.Scrape.OutputDir, pipeline.O2CMOutputFile)
	results, err := pipeline.ReadRecords[model.RawResult](path)
	if err != nil {
		return eris.Wrap(err, "read o2cm batch")
	}
	if results == nil {
		return nil
	}

	stats, err := runBatch(ctx, st, func(batch store.Batch) (importer.Stats, error) {
		return im.ImportResults(ctx, batch, results)
	})
	if err != nil {
		return eris.Wrap(err, "import o2cm")
	}

	zap.L().Info("o2cm import complete", zap.Int("records", len(results)), zap.String("stats", stats.String()))
	fmt.Printf("O2CM Results: %d inserted | %d skipped | %d linked\n",
		stats.Inserted, stats.Skipped, stats.Linked)
	return nil
}

// runBatch wraps one import pass in its own transaction, the durability
// unit for that source.
func runBatch(ctx context.Context, st store.Store, run func(store.Batch) (importer.Stats, error)) (importer.Stats, error) {
	batch, err := st.Begin(ctx)
	if err != nil {
		return importer.Stats{}, eris.Wrap(err, "begin batch")
	}

	stats, err := run(batch)
	if err != nil {
		_ = batch.Rollback(ctx)
		return stats, err
	}
	if err := batch.Commit(ctx); err != nil {
		return stats, eris.Wrap(err, "commit batch")
	}
	return stats, nil
}

func init() {
	importCmd.Flags().BoolVar(&importNDCAOnly, "ndca-only", false, "import only the NDCA dancer batch")
	importCmd.Flags().BoolVar(&importO2CMOnly, "o2cm-only", false, "import only the O2CM result batch")
	rootCmd.AddCommand(importCmd)
}
