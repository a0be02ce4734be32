package cmd

import (
	"github.com/spf13/cobra"
)

const defaultDelay = "2.0"

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Ask the backend to scrape faculty profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		delay, _ := cmd.Flags().GetString("delay")

		p, err := newPage(cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := commandContext()
		defer cancel()

		p.controller.SetScrapeOptions(headless, delay)
		return p.controller.StartScrape(ctx)
	},
}

func init() {
	scrapeCmd.Flags().Bool("headless", true, "run the scraper browser without a window")
	// Passed through as text: anything that is not a number is sent as null.
	scrapeCmd.Flags().String("delay", defaultDelay, "seconds to wait between profile requests")
	rootCmd.AddCommand(scrapeCmd)
}
