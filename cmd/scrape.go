package main

import (
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a dancer registry to a JSON batch file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Chain to root for config + logger, then validate scrape settings.
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return cfg.Validate("scrape")
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
