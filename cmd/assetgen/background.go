package main

import (
	"github.com/spf13/cobra"
)

var backgroundCmd = &cobra.Command{
	Use:     "background",
	Aliases: []string{"bg"},
	Short:   "Generate the gradient desktop background",
	Long: `Render the diagonal two-color gradient background and write it to the
configured output path, creating the output directory if needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		_, err = b.Background()
		return err
	},
}

func init() {
	backgroundCmd.Flags().Bool("force", false, "regenerate even if the output is up to date")
	rootCmd.AddCommand(backgroundCmd)
}
