package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/aellingwood/assetgen/internal/build"
	"github.com/aellingwood/assetgen/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "assetgen.yaml"

var rootCmd = &cobra.Command{
	Use:   "assetgen",
	Short: "Generate the application's background and icon images",
	Long: `Assetgen renders the static image assets an application ships with:
a diagonal gradient desktop background and a rounded, labelled app icon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logrus.SetOutput(cmd.ErrOrStderr())
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().String("root", "", "project root that asset paths are relative to")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the generation cache")
	rootCmd.PersistentFlags().String("text", "", "override the icon label text")
	rootCmd.PersistentFlags().String("font", "", "override the icon font file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the configuration for cmd. The default config file is
// optional; a file named explicitly with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		logrus.WithField("config", path).Debug("no config file; using defaults")
		cfg = config.Default()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	root, _ := cmd.Flags().GetString("root")
	text, _ := cmd.Flags().GetString("text")
	font, _ := cmd.Flags().GetString("font")
	overrides := map[string]any{"root": root, "text": text, "font": font}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		overrides["cache"] = false
	}
	cfg.WithOverrides(overrides)
	return cfg, cfg.Validate()
}

// newBuilder loads the configuration and returns a Builder writing progress
// to the command's output.
func newBuilder(cmd *cobra.Command) (*build.Builder, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	force, _ := cmd.Flags().GetBool("force")
	verbose, _ := cmd.Flags().GetBool("verbose")
	b := build.NewBuilder(cfg, build.Options{
		Force:   force,
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
	})
	return b, cfg, nil
}
