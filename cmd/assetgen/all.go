package main

import (
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate every asset",
	Long:  "Generate the background and then the icon, stopping at the first failure.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		_, err = b.All()
		return err
	},
}

func init() {
	allCmd.Flags().Bool("force", false, "regenerate even if outputs are up to date")
	rootCmd.AddCommand(allCmd)
}
