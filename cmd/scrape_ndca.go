package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/filledcard/ingest-cli/internal/pipeline"
)

var scrapeNDCACmd = &cobra.Command{
	Use:   "ndca",
	Short: "Scrape the NDCA member directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := pipeline.NewFetcher(cfg.Scrape)
		if err := pipeline.ScrapeNDCA(cmd.Context(), f, cfg.Scrape); err != nil {
			return eris.Wrap(err, "scrape ndca")
		}
		return nil
	},
}

func init() {
	scrapeCmd.AddCommand(scrapeNDCACmd)
}
