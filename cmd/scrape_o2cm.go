package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/filledcard/ingest-cli/internal/pipeline"
)

var scrapeO2CMCmd = &cobra.Command{
	Use:   "o2cm",
	Short: "Scrape recent O2CM competition results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := pipeline.NewFetcher(cfg.Scrape)
		if err := pipeline.ScrapeO2CM(cmd.Context(), f, cfg.Scrape); err != nil {
			return eris.Wrap(err, "scrape o2cm")
		}
		return nil
	},
}

func init() {
	scrapeCmd.AddCommand(scrapeO2CMCmd)
}
