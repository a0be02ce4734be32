package cmd

import (
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the scraped profile files known to the backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := newPage(cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := commandContext()
		defer cancel()

		return p.controller.Init(ctx)
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
