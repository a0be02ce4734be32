package cmd

import (
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a scraped profile file into the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPage(cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := commandContext()
		defer cancel()

		p.controller.SelectFile(args[0])
		return p.controller.LoadProfiles(ctx)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
