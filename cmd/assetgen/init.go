package main

import (
	"fmt"

	"github.com/aellingwood/assetgen/internal/scaffold"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter config file",
	Long: `Write the default configuration to assetgen.yaml (or assetgen.toml with
--format toml) in dir, or the current directory when dir is omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		format, _ := cmd.Flags().GetString("format")
		path, err := scaffold.NewConfig(dir, format)
		if err != nil {
			return fmt.Errorf("creating config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().String("format", "yaml", "config format: yaml or toml")
	rootCmd.AddCommand(initCmd)
}
