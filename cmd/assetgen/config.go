package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  "Print the fully resolved configuration after merging defaults, the config file, and flags.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return cfg.Encode(cmd.OutOrStdout(), format)
	},
}

func init() {
	configCmd.Flags().String("format", "yaml", "output format: yaml or toml")
	rootCmd.AddCommand(configCmd)
}
