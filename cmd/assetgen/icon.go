package main

import (
	"github.com/spf13/cobra"
)

var iconCmd = &cobra.Command{
	Use:   "icon",
	Short: "Generate the rounded application icon",
	Long: `Render the application icon: a vertically graded, round-cornered body
with a centered label on a transparent canvas. The label font must exist and
the output directory must already exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		_, err = b.Icon()
		return err
	},
}

func init() {
	iconCmd.Flags().Bool("force", false, "regenerate even if the output is up to date")
	rootCmd.AddCommand(iconCmd)
}
