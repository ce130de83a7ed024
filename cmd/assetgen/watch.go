package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aellingwood/assetgen/internal/build"
	"github.com/aellingwood/assetgen/internal/watch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate assets when the config or font changes",
	Long: `Generate every asset, then watch the config file and the icon font and
regenerate whenever either changes. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Initial build.
		b, cfg, err := newBuilder(cmd)
		if err != nil {
			return err
		}
		if _, err := b.All(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		// 2. Watch the config file and font.
		configPath, _ := cmd.Flags().GetString("config")
		paths := []string{configPath, cfg.Resolve(cfg.Icon.Font)}
		verbose, _ := cmd.Flags().GetBool("verbose")

		w := watch.New(paths, 200*time.Millisecond, func() {
			logrus.Info("Change detected, regenerating...")
			cfg, err := loadConfig(cmd)
			if err != nil {
				logrus.WithError(err).Error("reloading config failed")
				return
			}
			rb := build.NewBuilder(cfg, build.Options{Verbose: verbose, Out: cmd.OutOrStdout()})
			if _, err := rb.All(); err != nil {
				logrus.WithError(err).Error("regeneration failed")
			}
		})

		// 3. Stop on interrupt.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		done := make(chan struct{})
		defer close(done)
		go stopOnSignal(sigCh, done, func() {
			fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
			w.Stop()
		})

		for i := range paths {
			if abs, err := filepath.Abs(paths[i]); err == nil {
				paths[i] = abs
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s and %s for changes (Ctrl+C to stop)\n", paths[0], paths[1])
		return w.Start()
	},
}

// stopOnSignal calls stop when a signal arrives on sig. It returns without
// calling stop once done is closed.
func stopOnSignal(sig <-chan os.Signal, done <-chan struct{}, stop func()) {
	select {
	case <-sig:
		stop()
	case <-done:
	}
}

func init() {
	watchCmd.Flags().Bool("force", false, "regenerate on start even if outputs are up to date")
	rootCmd.AddCommand(watchCmd)
}
