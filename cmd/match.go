package cmd

import (
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find faculty members matching your research interests",
	Long: `Find faculty members matching your research interests.

With --file the profile file is loaded first. --analyze requests the detailed
analysis of one result by its index and --export saves the results.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		interests, _ := cmd.Flags().GetString("interests")
		file, _ := cmd.Flags().GetString("file")
		analyze, _ := cmd.Flags().GetInt("analyze")
		exportFormat, _ := cmd.Flags().GetString("export")

		p, err := newPage(cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := commandContext()
		defer cancel()

		if file != "" {
			p.controller.SelectFile(file)
			if err := p.controller.LoadProfiles(ctx); err != nil {
				return err
			}
		}

		p.controller.SetInterests(interests)
		if err := p.controller.FindMatches(ctx); err != nil {
			return err
		}

		if cmd.Flags().Changed("analyze") {
			if err := p.controller.DetailedAnalysis(ctx, analyze); err != nil {
				return err
			}
		}

		if cmd.Flags().Changed("export") {
			return p.controller.Export(ctx, p.exportFormat(exportFormat))
		}

		return nil
	},
}

func init() {
	matchCmd.Flags().StringP("interests", "i", "", "your research interests, free text")
	matchCmd.Flags().StringP("file", "f", "", "profile file to load before matching")
	matchCmd.Flags().Int("analyze", 0, "index of the match to analyze in detail")
	matchCmd.Flags().StringP("export", "e", "", "export the results as json or csv")
	matchCmd.MarkFlagRequired("interests")
	rootCmd.AddCommand(matchCmd)
}
